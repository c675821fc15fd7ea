package models

import "gorm.io/gorm"

// PlanVersion is an immutable deep copy of a plan's state at a point in time.
// VersionNumber is unique and strictly increasing per plan; numbers are never
// reused, even after a restore.
type PlanVersion struct {
	gorm.Model
	PlanID        uint   `gorm:"index:idx_plan_version,unique" json:"plan_id"`
	VersionNumber int    `gorm:"index:idx_plan_version,unique" json:"version_number"`
	Label         string `json:"label"`

	TotalCalories *float64 `json:"total_calories"`
	TotalProtein  *float64 `json:"total_protein"`
	TotalCarbs    *float64 `json:"total_carbs"`
	TotalFats     *float64 `json:"total_fats"`
	Notes         string   `gorm:"type:text" json:"notes"`

	Meals []VersionMeal `json:"meals"`
}

type VersionMeal struct {
	gorm.Model
	PlanVersionID uint `gorm:"index" json:"plan_version_id"`

	MealType string `gorm:"type:varchar(50);not null" json:"meal_type"`
	MealName string `json:"meal_name"`
	Position int    `json:"position"`

	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fats     *float64 `json:"fats"`

	Foods []VersionFood `json:"foods"`
}

type VersionFood struct {
	gorm.Model
	VersionMealID uint `gorm:"index" json:"version_meal_id"`

	FoodName string  `gorm:"type:varchar(255);not null" json:"food_name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `gorm:"type:varchar(50)" json:"unit"`
	Position int     `json:"position"`

	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fats     *float64 `json:"fats"`
}
