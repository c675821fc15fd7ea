package services

import (
	"errors"
	"fmt"

	"github.com/fabriciomourateam/controle-de-pacientes-sub007/models"

	"gorm.io/gorm"
)

// ErrVersionNotFound is returned when a restore targets a version id that
// does not exist for the plan. No mutation happens in that case.
var ErrVersionNotFound = errors.New("versão do plano não encontrada")

type VersionService struct {
	db *gorm.DB
}

func NewVersionService(db *gorm.DB) *VersionService {
	return &VersionService{db: db}
}

// CreateVersion stores an immutable deep copy of the plan's current state
// (totals, notes, all meals and foods) numbered max+1. The live plan is not
// touched. The multi-row copy runs in one transaction so a version can never
// be missing part of its meals.
func (s *VersionService) CreateVersion(planID uint, label string) (*models.PlanVersion, error) {
	var version *models.PlanVersion
	err := s.db.Transaction(func(tx *gorm.DB) error {
		v, err := snapshotPlan(tx, planID, label)
		if err != nil {
			return err
		}
		version = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return version, nil
}

// RestoreVersion rewrites the plan's live state from a stored version. The
// current state is snapshotted as an automatic backup first, so every restore
// is undoable; the target is resolved before anything mutates, so a missing
// version id leaves the plan and its history untouched.
func (s *VersionService) RestoreVersion(planID, versionID uint) (*models.PlanVersion, error) {
	var target models.PlanVersion
	err := s.db.
		Preload("Meals", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Meals.Foods", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ? AND plan_id = ?", versionID, planID).
		First(&target).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		backupLabel := fmt.Sprintf("Backup automático antes de restaurar v%d", target.VersionNumber)
		if _, err := snapshotPlan(tx, planID, backupLabel); err != nil {
			return err
		}

		var plan models.Plan
		if err := tx.First(&plan, planID).Error; err != nil {
			return err
		}

		// wipe live meals and foods
		if err := tx.
			Where("meal_id IN (?)", tx.Model(&models.Meal{}).Select("id").Where("plan_id = ?", planID)).
			Delete(&models.FoodItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("plan_id = ?", planID).Delete(&models.Meal{}).Error; err != nil {
			return err
		}

		plan.TotalCalories = clonePtr(target.TotalCalories)
		plan.TotalProtein = clonePtr(target.TotalProtein)
		plan.TotalCarbs = clonePtr(target.TotalCarbs)
		plan.TotalFats = clonePtr(target.TotalFats)
		plan.Notes = target.Notes
		if err := tx.Save(&plan).Error; err != nil {
			return err
		}

		// rebuild from the snapshot, keeping the stored positions
		for _, vm := range target.Meals {
			meal := models.Meal{
				PlanID:   plan.ID,
				MealType: vm.MealType,
				MealName: vm.MealName,
				Position: vm.Position,
				Calories: clonePtr(vm.Calories),
				Protein:  clonePtr(vm.Protein),
				Carbs:    clonePtr(vm.Carbs),
				Fats:     clonePtr(vm.Fats),
			}
			if err := tx.Create(&meal).Error; err != nil {
				return err
			}
			for _, vf := range vm.Foods {
				food := models.FoodItem{
					MealID:   meal.ID,
					FoodName: vf.FoodName,
					Quantity: vf.Quantity,
					Unit:     vf.Unit,
					Position: vf.Position,
					Calories: clonePtr(vf.Calories),
					Protein:  clonePtr(vf.Protein),
					Carbs:    clonePtr(vf.Carbs),
					Fats:     clonePtr(vf.Fats),
				}
				if err := tx.Create(&food).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &target, nil
}

func (s *VersionService) ListVersions(planID uint) ([]models.PlanVersion, error) {
	var versions []models.PlanVersion
	err := s.db.
		Preload("Meals", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Meals.Foods", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("plan_id = ?", planID).
		Order("version_number ASC").
		Find(&versions).Error
	return versions, err
}

// snapshotPlan copies the plan's full current state into version rows within
// the caller's transaction. Version numbers only ever grow; restores never
// renumber history.
func snapshotPlan(tx *gorm.DB, planID uint, label string) (*models.PlanVersion, error) {
	var plan models.Plan
	err := tx.
		Preload("Meals", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Meals.Foods", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&plan, planID).Error
	if err != nil {
		return nil, err
	}

	var maxNumber int
	if err := tx.Model(&models.PlanVersion{}).
		Where("plan_id = ?", planID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&maxNumber).Error; err != nil {
		return nil, err
	}

	version := models.PlanVersion{
		PlanID:        plan.ID,
		VersionNumber: maxNumber + 1,
		Label:         label,
		TotalCalories: clonePtr(plan.TotalCalories),
		TotalProtein:  clonePtr(plan.TotalProtein),
		TotalCarbs:    clonePtr(plan.TotalCarbs),
		TotalFats:     clonePtr(plan.TotalFats),
		Notes:         plan.Notes,
	}
	for _, m := range plan.Meals {
		vm := models.VersionMeal{
			MealType: m.MealType,
			MealName: m.MealName,
			Position: m.Position,
			Calories: clonePtr(m.Calories),
			Protein:  clonePtr(m.Protein),
			Carbs:    clonePtr(m.Carbs),
			Fats:     clonePtr(m.Fats),
		}
		for _, f := range m.Foods {
			vm.Foods = append(vm.Foods, models.VersionFood{
				FoodName: f.FoodName,
				Quantity: f.Quantity,
				Unit:     f.Unit,
				Position: f.Position,
				Calories: clonePtr(f.Calories),
				Protein:  clonePtr(f.Protein),
				Carbs:    clonePtr(f.Carbs),
				Fats:     clonePtr(f.Fats),
			})
		}
		version.Meals = append(version.Meals, vm)
	}

	if err := tx.Create(&version).Error; err != nil {
		return nil, err
	}
	return &version, nil
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
