package utils

import "strings"

// Household measures used in Brazilian diet plans, mapped to grams.
const (
	gramsPerUnit       = 100.0 // average serving mass for "1 unidade"
	gramsPerTablespoon = 15.0  // colher de sopa
	gramsPerTeaspoon   = 5.0   // colher de chá
	gramsPerCup        = 240.0 // xícara
)

// ToGrams converts a quantity in an arbitrary serving unit to grams.
// Matching is case-insensitive and whitespace-tolerant. An unrecognized unit
// returns the quantity unchanged: the caller entered a free-form unit and the
// least-wrong reading is "already grams". This is a permissive fallback, not
// a validation gate, never an error.
func ToGrams(quantity float64, unit string) float64 {
	u := strings.ToLower(strings.TrimSpace(unit))

	switch u {
	case "g", "gr", "grama", "gramas":
		return quantity
	case "kg", "quilo", "quilos":
		return quantity * 1000
	case "unidade", "unidades", "un", "und":
		return quantity * gramsPerUnit
	case "ml":
		// 1 ml ≈ 1 g for the liquids these plans use
		return quantity
	}

	if strings.Contains(u, "colher") {
		if strings.Contains(u, "sopa") {
			return quantity * gramsPerTablespoon
		}
		if strings.Contains(u, "chá") || strings.Contains(u, "cha") {
			return quantity * gramsPerTeaspoon
		}
	}
	if strings.Contains(u, "xícara") || strings.Contains(u, "xicara") {
		return quantity * gramsPerCup
	}

	return quantity
}
