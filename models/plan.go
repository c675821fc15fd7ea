package models

import "gorm.io/gorm"

// Meal type vocabulary used by the distribution and validation heuristics.
const (
	MealBreakfast   = "breakfast"
	MealSnack1      = "snack_1"
	MealLunch       = "lunch"
	MealSnack2      = "snack_2"
	MealDinner      = "dinner"
	MealPreWorkout  = "pre_workout"
	MealPostWorkout = "post_workout"
)

// Plan is the root aggregate. Declared totals are user-entered and advisory;
// they may legitimately diverge from the computed sums; validation surfaces
// the divergence, it never fixes it.
type Plan struct {
	gorm.Model
	OwnerID uint `gorm:"index" json:"owner_id"`

	TotalCalories *float64 `json:"total_calories"`
	TotalProtein  *float64 `json:"total_protein"`
	TotalCarbs    *float64 `json:"total_carbs"`
	TotalFats     *float64 `json:"total_fats"`

	Notes string `gorm:"type:text" json:"notes"`
	Meals []Meal `json:"meals"`
}

type Meal struct {
	gorm.Model
	PlanID uint `gorm:"index" json:"plan_id"`

	MealType string `gorm:"type:varchar(50);not null" json:"meal_type"`
	MealName string `json:"meal_name"`
	Position int    `json:"position"` // display order, gaps allowed

	// Snapshot computed on save; nil until then.
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fats     *float64 `json:"fats"`

	Foods []FoodItem `json:"foods"`
}

type FoodItem struct {
	gorm.Model
	MealID uint `gorm:"index" json:"meal_id"`

	FoodName string  `gorm:"type:varchar(255);not null" json:"food_name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `gorm:"type:varchar(50)" json:"unit"`
	Position int     `json:"position"`

	// Precomputed macro snapshot for this quantity. When present it is
	// authoritative; when nil the engines resolve against the catalog.
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fats     *float64 `json:"fats"`
}
