package services

import (
	"github.com/fabriciomourateam/controle-de-pacientes-sub007/models"
	"github.com/fabriciomourateam/controle-de-pacientes-sub007/utils"

	"gorm.io/gorm"
)

type PlanService struct {
	db      *gorm.DB
	catalog CatalogLookup
}

func NewPlanService(db *gorm.DB, catalog CatalogLookup) *PlanService {
	return &PlanService{db: db, catalog: catalog}
}

func (s *PlanService) CreatePlan(plan *models.Plan) (*models.Plan, error) {
	if err := s.db.Create(plan).Error; err != nil {
		return nil, err
	}
	return s.GetPlan(plan.OwnerID, plan.ID)
}

func (s *PlanService) GetPlan(ownerID, planID uint) (*models.Plan, error) {
	var plan models.Plan
	err := s.db.
		Preload("Meals", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Meals.Foods", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ? AND owner_id = ?", planID, ownerID).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *PlanService) ListPlans(ownerID uint) ([]models.Plan, error) {
	var plans []models.Plan
	err := s.db.
		Preload("Meals", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Meals.Foods", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&plans).Error
	return plans, err
}

// UpdatePlanDetails rewrites the declared totals and notes. Meals are managed
// through their own operations.
func (s *PlanService) UpdatePlanDetails(ownerID, planID uint, totalCalories, totalProtein, totalCarbs, totalFats *float64, notes string) (*models.Plan, error) {
	var plan models.Plan
	if err := s.db.
		Where("id = ? AND owner_id = ?", planID, ownerID).
		First(&plan).Error; err != nil {
		return nil, err
	}

	plan.TotalCalories = totalCalories
	plan.TotalProtein = totalProtein
	plan.TotalCarbs = totalCarbs
	plan.TotalFats = totalFats
	plan.Notes = notes
	if err := s.db.Save(&plan).Error; err != nil {
		return nil, err
	}
	return s.GetPlan(ownerID, planID)
}

func (s *PlanService) DeletePlan(ownerID, planID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var plan models.Plan
		if err := tx.
			Where("id = ? AND owner_id = ?", planID, ownerID).
			First(&plan).Error; err != nil {
			return err
		}
		if err := tx.
			Where("meal_id IN (?)", tx.Model(&models.Meal{}).Select("id").Where("plan_id = ?", planID)).
			Delete(&models.FoodItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("plan_id = ?", planID).Delete(&models.Meal{}).Error; err != nil {
			return err
		}
		return tx.Delete(&plan).Error
	})
}

func (s *PlanService) AddMeal(ownerID, planID uint, meal *models.Meal) (*models.Meal, error) {
	var plan models.Plan
	if err := s.db.
		Where("id = ? AND owner_id = ?", planID, ownerID).
		First(&plan).Error; err != nil {
		return nil, err
	}
	meal.PlanID = plan.ID
	if err := s.db.Create(meal).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

func (s *PlanService) DeleteMeal(ownerID, mealID uint) error {
	meal, err := s.ownedMeal(ownerID, mealID)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.FoodItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(meal).Error
	})
}

func (s *PlanService) AddFood(ownerID, mealID uint, food *models.FoodItem) (*models.FoodItem, error) {
	meal, err := s.ownedMeal(ownerID, mealID)
	if err != nil {
		return nil, err
	}
	food.MealID = meal.ID
	if err := s.db.Create(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

func (s *PlanService) DeleteFood(ownerID, foodID uint) error {
	var food models.FoodItem
	err := s.db.
		Joins("JOIN meals ON meals.id = food_items.meal_id").
		Joins("JOIN plans ON plans.id = meals.plan_id").
		Where("food_items.id = ? AND plans.owner_id = ?", foodID, ownerID).
		First(&food).Error
	if err != nil {
		return err
	}
	return s.db.Delete(&food).Error
}

// RecomputeMealMacros resolves the meal's foods against the catalog, writes
// each food's macro snapshot for its quantity, and rolls the sums up into the
// meal snapshot. This is the "computed on save" step the validation engine
// expects; foods without a catalog match contribute zero.
func (s *PlanService) RecomputeMealMacros(ownerID, mealID uint) (*models.Meal, error) {
	meal, err := s.ownedMeal(ownerID, mealID)
	if err != nil {
		return nil, err
	}
	var foods []models.FoodItem
	if err := s.db.
		Where("meal_id = ?", meal.ID).
		Order("position ASC").
		Find(&foods).Error; err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var names []string
	for _, f := range foods {
		if !seen[f.FoodName] {
			seen[f.FoodName] = true
			names = append(names, f.FoodName)
		}
	}
	catalog, err := s.catalog.FindByNames(names)
	if err != nil {
		return nil, err
	}

	var mealCal, mealProt, mealCarb, mealFat float64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range foods {
			f := &foods[i]
			entry, ok := catalog[f.FoodName]
			factor := utils.ToGrams(f.Quantity, f.Unit) / 100.0

			var cal, prot, carb, fat float64
			if ok {
				cal = entry.Calories * factor
				prot = entry.Protein * factor
				carb = entry.Carbs * factor
				fat = entry.Fats * factor
			}
			f.Calories = &cal
			f.Protein = &prot
			f.Carbs = &carb
			f.Fats = &fat
			if err := tx.Save(f).Error; err != nil {
				return err
			}

			mealCal += cal
			mealProt += prot
			mealCarb += carb
			mealFat += fat
		}

		meal.Calories = &mealCal
		meal.Protein = &mealProt
		meal.Carbs = &mealCarb
		meal.Fats = &mealFat
		return tx.Save(meal).Error
	})
	if err != nil {
		return nil, err
	}

	meal.Foods = foods
	return meal, nil
}

func (s *PlanService) ownedMeal(ownerID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.
		Joins("JOIN plans ON plans.id = meals.plan_id").
		Where("meals.id = ? AND plans.owner_id = ?", mealID, ownerID).
		First(&meal).Error
	if err != nil {
		return nil, err
	}
	return &meal, nil
}
