package services

import (
	"fmt"
	"math"
)

// Distribution strategy selectors.
const (
	StrategyBalanced       = "balanced"
	StrategyProteinFocused = "protein_focused"
	StrategyCarbStrategic  = "carb_strategic"
)

// Partition weights are behavioral constants carried over from the original
// planning rules. They are configuration, not derived science; do not assume
// they generalize to other splits.
const (
	mainMealCalorieShare = 0.40 // protein_focused: lunch+dinner share of kcal/carbs/fats
	mainMealProteinShare = 0.50 // protein_focused: lunch+dinner share of protein
	workoutCarbShare     = 0.50 // carb_strategic: pre/post workout share of carbs
	workoutOtherShare    = 0.30 // carb_strategic: pre/post workout share of the rest

	calorieTolerance = 50.0 // kcal
	macroTolerance   = 5.0  // grams
)

type MacroTargets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// MealMacroTarget is one meal's slice of the daily target.
type MealMacroTarget struct {
	MealType string  `json:"meal_type"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// DistributeMacros splits the daily target across the given meals under the
// chosen strategy. Calories are rounded to the nearest integer and the other
// macros to one decimal, per meal, independently. Rounding drift is not
// redistributed here; call NormalizeDistribution when the exact totals must
// be reproduced.
func DistributeMacros(totals MacroTargets, mealTypes []string, strategy string) ([]MealMacroTarget, error) {
	if len(mealTypes) == 0 {
		return nil, fmt.Errorf("distribution requires at least one meal")
	}

	switch strategy {
	case StrategyBalanced:
		return distributeBalanced(totals, mealTypes), nil
	case StrategyProteinFocused:
		return distributeProteinFocused(totals, mealTypes), nil
	case StrategyCarbStrategic:
		return distributeCarbStrategic(totals, mealTypes), nil
	default:
		return nil, fmt.Errorf("unknown distribution strategy %q", strategy)
	}
}

func distributeBalanced(totals MacroTargets, mealTypes []string) []MealMacroTarget {
	portion := 1.0 / float64(len(mealTypes))
	out := make([]MealMacroTarget, 0, len(mealTypes))
	for _, mt := range mealTypes {
		out = append(out, MealMacroTarget{
			MealType: mt,
			Calories: roundKcal(totals.Calories * portion),
			Protein:  round1(totals.Protein * portion),
			Carbs:    round1(totals.Carbs * portion),
			Fats:     round1(totals.Fats * portion),
		})
	}
	return out
}

func distributeProteinFocused(totals MacroTargets, mealTypes []string) []MealMacroTarget {
	isMain := func(mt string) bool { return mt == "lunch" || mt == "dinner" }

	mainCount, otherCount := 0, 0
	for _, mt := range mealTypes {
		if isMain(mt) {
			mainCount++
		} else {
			otherCount++
		}
	}

	out := make([]MealMacroTarget, 0, len(mealTypes))
	for _, mt := range mealTypes {
		var calShare, protShare float64
		var div int
		if isMain(mt) {
			calShare, protShare = mainMealCalorieShare, mainMealProteinShare
			div = mainCount
		} else {
			calShare, protShare = 1-mainMealCalorieShare, 1-mainMealProteinShare
			div = otherCount
		}
		n := nonZero(div)
		out = append(out, MealMacroTarget{
			MealType: mt,
			Calories: roundKcal(totals.Calories * calShare / n),
			Protein:  round1(totals.Protein * protShare / n),
			Carbs:    round1(totals.Carbs * calShare / n),
			Fats:     round1(totals.Fats * calShare / n),
		})
	}
	return out
}

func distributeCarbStrategic(totals MacroTargets, mealTypes []string) []MealMacroTarget {
	isWorkout := func(mt string) bool { return mt == "pre_workout" || mt == "post_workout" }

	workoutCount, regularCount := 0, 0
	for _, mt := range mealTypes {
		if isWorkout(mt) {
			workoutCount++
		} else {
			regularCount++
		}
	}

	out := make([]MealMacroTarget, 0, len(mealTypes))
	for _, mt := range mealTypes {
		var carbShare, otherShare float64
		var div int
		if isWorkout(mt) {
			carbShare, otherShare = workoutCarbShare, workoutOtherShare
			div = workoutCount
		} else {
			carbShare, otherShare = 1-workoutCarbShare, 1-workoutOtherShare
			div = regularCount
		}
		n := nonZero(div)
		out = append(out, MealMacroTarget{
			MealType: mt,
			Calories: roundKcal(totals.Calories * otherShare / n),
			Protein:  round1(totals.Protein * otherShare / n),
			Carbs:    round1(totals.Carbs * carbShare / n),
			Fats:     round1(totals.Fats * otherShare / n),
		})
	}
	return out
}

// NormalizeDistribution spreads the residual between the target totals and
// the distribution's sums evenly across all meals, correcting the drift that
// per-meal rounding introduces.
func NormalizeDistribution(dist []MealMacroTarget, totals MacroTargets) []MealMacroTarget {
	if len(dist) == 0 {
		return dist
	}
	sum := sumDistribution(dist)
	n := float64(len(dist))

	calAdj := (totals.Calories - sum.Calories) / n
	protAdj := (totals.Protein - sum.Protein) / n
	carbAdj := (totals.Carbs - sum.Carbs) / n
	fatAdj := (totals.Fats - sum.Fats) / n

	out := make([]MealMacroTarget, len(dist))
	for i, d := range dist {
		out[i] = MealMacroTarget{
			MealType: d.MealType,
			Calories: roundKcal(d.Calories + calAdj),
			Protein:  round1(d.Protein + protAdj),
			Carbs:    round1(d.Carbs + carbAdj),
			Fats:     round1(d.Fats + fatAdj),
		}
	}
	return out
}

type DistributionCheck struct {
	Valid      bool `json:"valid"`
	CaloriesOK bool `json:"calories_ok"`
	ProteinOK  bool `json:"protein_ok"`
	CarbsOK    bool `json:"carbs_ok"`
	FatsOK     bool `json:"fats_ok"`

	// signed differences, target minus distributed
	CaloriesDiff float64 `json:"calories_diff"`
	ProteinDiff  float64 `json:"protein_diff"`
	CarbsDiff    float64 `json:"carbs_diff"`
	FatsDiff     float64 `json:"fats_diff"`
}

// ValidateDistribution checks the distribution's sums against the target.
// The optional tolerance overrides the calorie tolerance, defaulting to
// 50 kcal; macros always use the 5 g tolerance. The signed differences are
// returned regardless of validity so callers can decide whether to normalize.
func ValidateDistribution(dist []MealMacroTarget, totals MacroTargets, tolerance ...float64) DistributionCheck {
	calTol := calorieTolerance
	if len(tolerance) > 0 && tolerance[0] > 0 {
		calTol = tolerance[0]
	}
	sum := sumDistribution(dist)
	c := DistributionCheck{
		CaloriesDiff: totals.Calories - sum.Calories,
		ProteinDiff:  totals.Protein - sum.Protein,
		CarbsDiff:    totals.Carbs - sum.Carbs,
		FatsDiff:     totals.Fats - sum.Fats,
	}
	c.CaloriesOK = math.Abs(c.CaloriesDiff) <= calTol
	c.ProteinOK = math.Abs(c.ProteinDiff) <= macroTolerance
	c.CarbsOK = math.Abs(c.CarbsDiff) <= macroTolerance
	c.FatsOK = math.Abs(c.FatsDiff) <= macroTolerance
	c.Valid = c.CaloriesOK && c.ProteinOK && c.CarbsOK && c.FatsOK
	return c
}

// PartialMacros overrides only the fields it carries.
type PartialMacros struct {
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fats     *float64 `json:"fats"`
}

// AdjustDistribution returns a copy of the distribution with one meal's
// target overridden. Intended for manual tweaks after automatic distribution;
// it does not re-validate.
func AdjustDistribution(dist []MealMacroTarget, mealIndex int, partial PartialMacros) ([]MealMacroTarget, error) {
	if mealIndex < 0 || mealIndex >= len(dist) {
		return nil, fmt.Errorf("meal index %d out of range", mealIndex)
	}
	out := make([]MealMacroTarget, len(dist))
	copy(out, dist)

	m := &out[mealIndex]
	if partial.Calories != nil {
		m.Calories = roundKcal(*partial.Calories)
	}
	if partial.Protein != nil {
		m.Protein = round1(*partial.Protein)
	}
	if partial.Carbs != nil {
		m.Carbs = round1(*partial.Carbs)
	}
	if partial.Fats != nil {
		m.Fats = round1(*partial.Fats)
	}
	return out, nil
}

func sumDistribution(dist []MealMacroTarget) MacroTargets {
	var s MacroTargets
	for _, d := range dist {
		s.Calories += d.Calories
		s.Protein += d.Protein
		s.Carbs += d.Carbs
		s.Fats += d.Fats
	}
	return s
}

// empty-partition fallback: dividing by 1 instead of 0 when a strategy's
// partition has no meals
func nonZero(n int) float64 {
	if n == 0 {
		return 1
	}
	return float64(n)
}

func roundKcal(v float64) float64 { return math.Round(v) }
func round1(v float64) float64    { return math.Round(v*10) / 10 }
