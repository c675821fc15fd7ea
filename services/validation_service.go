package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/fabriciomourateam/controle-de-pacientes-sub007/models"
)

// IssueSeverity categorizes how serious a validation finding is.
type IssueSeverity string

const (
	SeverityHigh   IssueSeverity = "high"
	SeverityMedium IssueSeverity = "medium"
	SeverityLow    IssueSeverity = "low"
)

// ValidationIssue is a structured finding suitable for the API / UI.
type ValidationIssue struct {
	Code     string        `json:"code"`
	Severity IssueSeverity `json:"severity,omitempty"`
	Message  string        `json:"message"`
	Field    string        `json:"field,omitempty"`
}

type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
}

// Tolerances between declared totals and the sum of meal snapshots.
const (
	totalsCalorieTolerance = 50.0 // kcal → error beyond this
	totalsMacroTolerance   = 5.0  // g → warning beyond this
	repeatedFoodLimit      = 3    // occurrences before a food is flagged
)

// ValidatePlan cross-checks a plan's declared totals against its computed
// sums and flags structural issues. Every rule is evaluated independently;
// nothing short-circuits. Warnings never affect Valid; the caller decides
// whether errors block a save.
func ValidatePlan(plan *models.Plan) ValidationResult {
	res := ValidationResult{
		Errors:   []ValidationIssue{},
		Warnings: []ValidationIssue{},
	}

	checkDeclaredTotals(plan, &res)
	checkMealCount(plan, &res)
	checkMealContents(plan, &res)
	checkCalorieSkew(plan, &res)
	checkRepeatedFoods(plan, &res)
	checkNegativeValues(plan, &res)

	res.Valid = len(res.Errors) == 0
	return res
}

// checkDeclaredTotals compares each declared total against the sum of the
// per-meal snapshots. Declared totals are advisory and user-entered, so only
// the calorie divergence is hard enough to be an error. Skipped entirely when
// the plan declares no totals.
func checkDeclaredTotals(plan *models.Plan, res *ValidationResult) {
	if plan.TotalCalories == nil && plan.TotalProtein == nil &&
		plan.TotalCarbs == nil && plan.TotalFats == nil {
		return
	}

	var sumCal, sumProt, sumCarb, sumFat float64
	for _, m := range plan.Meals {
		sumCal += deref(m.Calories)
		sumProt += deref(m.Protein)
		sumCarb += deref(m.Carbs)
		sumFat += deref(m.Fats)
	}

	if plan.TotalCalories != nil {
		diff := math.Abs(*plan.TotalCalories - sumCal)
		if diff > totalsCalorieTolerance {
			res.Errors = append(res.Errors, ValidationIssue{
				Code:  "totals_calories_mismatch",
				Field: "total_calories",
				Message: fmt.Sprintf(
					"Calorias totais divergem da soma das refeições: declarado %.0f, calculado %.0f (diferença %.0f kcal)",
					*plan.TotalCalories, sumCal, diff),
			})
		}
	}

	type macroCheck struct {
		declared *float64
		sum      float64
		field    string
		label    string
	}
	for _, mc := range []macroCheck{
		{plan.TotalProtein, sumProt, "total_protein", "proteína"},
		{plan.TotalCarbs, sumCarb, "total_carbs", "carboidratos"},
		{plan.TotalFats, sumFat, "total_fats", "gorduras"},
	} {
		if mc.declared == nil {
			continue
		}
		diff := math.Abs(*mc.declared - mc.sum)
		if diff > totalsMacroTolerance {
			res.Warnings = append(res.Warnings, ValidationIssue{
				Code:     "totals_" + strings.TrimPrefix(mc.field, "total_") + "_mismatch",
				Severity: SeverityMedium,
				Field:    mc.field,
				Message: fmt.Sprintf(
					"Total de %s diverge da soma das refeições: declarado %.1fg, calculado %.1fg",
					mc.label, *mc.declared, mc.sum),
			})
		}
	}
}

func checkMealCount(plan *models.Plan, res *ValidationResult) {
	switch n := len(plan.Meals); {
	case n == 0:
		res.Errors = append(res.Errors, ValidationIssue{
			Code:    "no_meals",
			Message: "O plano deve ter pelo menos uma refeição",
		})
	case n <= 2:
		res.Warnings = append(res.Warnings, ValidationIssue{
			Code:     "few_meals",
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("Plano com apenas %d refeição(ões); recomenda-se pelo menos 3", n),
		})
	}
}

func checkMealContents(plan *models.Plan, res *ValidationResult) {
	for _, m := range plan.Meals {
		name := m.MealName
		if name == "" {
			name = m.MealType
		}
		if len(m.Foods) == 0 {
			res.Warnings = append(res.Warnings, ValidationIssue{
				Code:     "empty_meal",
				Severity: SeverityHigh,
				Message:  fmt.Sprintf("Refeição %q não possui alimentos", name),
			})
			continue
		}
		// macros are computed on save, not on data entry, so a missing
		// snapshot is informational
		if m.Calories == nil && m.Protein == nil && m.Carbs == nil && m.Fats == nil {
			res.Warnings = append(res.Warnings, ValidationIssue{
				Code:     "meal_without_macros",
				Severity: SeverityMedium,
				Message:  fmt.Sprintf("Refeição %q possui alimentos mas não tem macros calculados", name),
			})
		}
	}
}

// checkCalorieSkew measures each meal against the summed meal calories (not
// the declared totals).
func checkCalorieSkew(plan *models.Plan, res *ValidationResult) {
	var total float64
	for _, m := range plan.Meals {
		total += deref(m.Calories)
	}
	if total <= 0 {
		return
	}
	for _, m := range plan.Meals {
		cal := deref(m.Calories)
		share := cal / total * 100
		name := m.MealName
		if name == "" {
			name = m.MealType
		}
		if share > 50 {
			res.Warnings = append(res.Warnings, ValidationIssue{
				Code:     "meal_calorie_concentration",
				Severity: SeverityMedium,
				Message:  fmt.Sprintf("Refeição %q concentra %.0f%% das calorias do plano", name, share),
			})
		} else if cal > 0 && share < 5 {
			res.Warnings = append(res.Warnings, ValidationIssue{
				Code:     "meal_calorie_marginal",
				Severity: SeverityLow,
				Message:  fmt.Sprintf("Refeição %q contribui com menos de 5%% das calorias do plano", name),
			})
		}
	}
}

// checkRepeatedFoods reports one aggregated warning listing every food name
// that appears more than three times across the whole plan.
func checkRepeatedFoods(plan *models.Plan, res *ValidationResult) {
	counts := map[string]int{}
	for _, m := range plan.Meals {
		for _, f := range m.Foods {
			counts[f.FoodName]++
		}
	}

	var offenders []string
	for name, n := range counts {
		if n > repeatedFoodLimit {
			offenders = append(offenders, name)
		}
	}
	if len(offenders) == 0 {
		return
	}
	sort.Strings(offenders)
	res.Warnings = append(res.Warnings, ValidationIssue{
		Code:     "repeated_food",
		Severity: SeverityLow,
		Message: fmt.Sprintf("Alimentos repetidos mais de %d vezes no plano: %s",
			repeatedFoodLimit, strings.Join(offenders, ", ")),
	})
}

// checkNegativeValues treats any negative macro or quantity as a hard error,
// one per offending field.
func checkNegativeValues(plan *models.Plan, res *ValidationResult) {
	negative := func(field string, v *float64) {
		if v != nil && *v < 0 {
			res.Errors = append(res.Errors, ValidationIssue{
				Code:    "negative_value",
				Field:   field,
				Message: fmt.Sprintf("Valor negativo em %s: %.1f", field, *v),
			})
		}
	}

	negative("total_calories", plan.TotalCalories)
	negative("total_protein", plan.TotalProtein)
	negative("total_carbs", plan.TotalCarbs)
	negative("total_fats", plan.TotalFats)

	for i, m := range plan.Meals {
		prefix := fmt.Sprintf("meals[%d].", i)
		negative(prefix+"calories", m.Calories)
		negative(prefix+"protein", m.Protein)
		negative(prefix+"carbs", m.Carbs)
		negative(prefix+"fats", m.Fats)

		for j, f := range m.Foods {
			fp := fmt.Sprintf("%sfoods[%d].", prefix, j)
			if f.Quantity < 0 {
				res.Errors = append(res.Errors, ValidationIssue{
					Code:    "negative_value",
					Field:   fp + "quantity",
					Message: fmt.Sprintf("Valor negativo em %squantity: %.1f", fp, f.Quantity),
				})
			}
			negative(fp+"calories", f.Calories)
			negative(fp+"protein", f.Protein)
			negative(fp+"carbs", f.Carbs)
			negative(fp+"fats", f.Fats)
		}
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
