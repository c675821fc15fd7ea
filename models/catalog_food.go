package models

import "gorm.io/gorm"

// Reference food data, macros per 100g.
// Owned by the catalog; plans only point at rows by name.
type CatalogFood struct {
	gorm.Model
	Name     string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Category string `json:"category"`

	Calories float64 `json:"calories"` // kcal per 100g
	Protein  float64 `json:"protein"`  // g per 100g
	Carbs    float64 `json:"carbs"`    // g per 100g
	Fats     float64 `json:"fats"`     // g per 100g
	Fiber    float64 `json:"fiber"`    // g per 100g
	Sodium   float64 `json:"sodium"`   // mg per 100g

	// No column default on purpose: a default tag makes GORM drop the zero
	// value on insert, so rows written with Active=false would come back
	// active. Create sets the flag explicitly instead.
	Active bool `json:"active"`
}
