package services

import (
	"math"
	"testing"
)

var dailyTotals = MacroTargets{Calories: 2000, Protein: 150, Carbs: 200, Fats: 60}

func sumCalories(dist []MealMacroTarget) float64 {
	var s float64
	for _, d := range dist {
		s += d.Calories
	}
	return s
}

func TestDistributeMacros_Balanced(t *testing.T) {
	meals := []string{"breakfast", "lunch", "snack_1", "dinner"}
	dist, err := DistributeMacros(dailyTotals, meals, StrategyBalanced)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dist) != 4 {
		t.Fatalf("expected 4 targets, got %d", len(dist))
	}
	for i, d := range dist {
		if d.MealType != meals[i] {
			t.Errorf("target %d: expected meal type %q, got %q", i, meals[i], d.MealType)
		}
		if d.Calories != 500 {
			t.Errorf("target %d: expected 500 kcal, got %v", i, d.Calories)
		}
		if d.Protein != 37.5 {
			t.Errorf("target %d: expected 37.5g protein, got %v", i, d.Protein)
		}
		if d.Carbs != 50 || d.Fats != 15 {
			t.Errorf("target %d: unexpected carbs/fats %v/%v", i, d.Carbs, d.Fats)
		}
	}
	if got := sumCalories(dist); got != 2000 {
		t.Errorf("expected summed calories 2000, got %v", got)
	}
}

func TestNormalizeDistribution_ReproducesTotal(t *testing.T) {
	meals := []string{"breakfast", "lunch", "snack_1", "dinner"}
	dist, err := DistributeMacros(dailyTotals, meals, StrategyBalanced)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	norm := NormalizeDistribution(dist, dailyTotals)
	if got := sumCalories(norm); got != 2000 {
		t.Errorf("expected exactly 2000 kcal after normalize, got %v", got)
	}
}

func TestDistributeMacros_ProteinFocused(t *testing.T) {
	meals := []string{"breakfast", "lunch", "snack_1", "dinner"}
	dist, err := DistributeMacros(dailyTotals, meals, StrategyProteinFocused)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byType := map[string]MealMacroTarget{}
	for _, d := range dist {
		byType[d.MealType] = d
	}

	// lunch+dinner split 40% of calories/carbs/fats and 50% of protein
	for _, mt := range []string{"lunch", "dinner"} {
		d := byType[mt]
		if d.Calories != 400 {
			t.Errorf("%s: expected 400 kcal, got %v", mt, d.Calories)
		}
		if d.Protein != 37.5 {
			t.Errorf("%s: expected 37.5g protein, got %v", mt, d.Protein)
		}
		if d.Carbs != 40 || d.Fats != 12 {
			t.Errorf("%s: unexpected carbs/fats %v/%v", mt, d.Carbs, d.Fats)
		}
	}
	// the other two meals split the complements
	for _, mt := range []string{"breakfast", "snack_1"} {
		d := byType[mt]
		if d.Calories != 600 {
			t.Errorf("%s: expected 600 kcal, got %v", mt, d.Calories)
		}
		if d.Protein != 37.5 {
			t.Errorf("%s: expected 37.5g protein, got %v", mt, d.Protein)
		}
		if d.Carbs != 60 || d.Fats != 18 {
			t.Errorf("%s: unexpected carbs/fats %v/%v", mt, d.Carbs, d.Fats)
		}
	}
}

func TestDistributeMacros_CarbStrategic(t *testing.T) {
	meals := []string{"breakfast", "lunch", "pre_workout", "post_workout"}
	dist, err := DistributeMacros(dailyTotals, meals, StrategyCarbStrategic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byType := map[string]MealMacroTarget{}
	for _, d := range dist {
		byType[d.MealType] = d
	}

	// workout meals take 50% of carbs but only 30% of everything else
	for _, mt := range []string{"pre_workout", "post_workout"} {
		d := byType[mt]
		if d.Carbs != 50 {
			t.Errorf("%s: expected 50g carbs, got %v", mt, d.Carbs)
		}
		if d.Calories != 300 {
			t.Errorf("%s: expected 300 kcal, got %v", mt, d.Calories)
		}
		if d.Protein != 22.5 || d.Fats != 9 {
			t.Errorf("%s: unexpected protein/fats %v/%v", mt, d.Protein, d.Fats)
		}
	}
	for _, mt := range []string{"breakfast", "lunch"} {
		d := byType[mt]
		if d.Carbs != 50 {
			t.Errorf("%s: expected 50g carbs, got %v", mt, d.Carbs)
		}
		if d.Calories != 700 {
			t.Errorf("%s: expected 700 kcal, got %v", mt, d.Calories)
		}
	}
}

func TestDistributeMacros_EmptyPartitionFallback(t *testing.T) {
	// no lunch/dinner: the main partition is empty and divides by 1 instead
	// of crashing; the other meals still split their 60%/50% shares
	dist, err := DistributeMacros(dailyTotals, []string{"breakfast", "snack_1"}, StrategyProteinFocused)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, d := range dist {
		if d.Calories != 600 {
			t.Errorf("%s: expected 600 kcal, got %v", d.MealType, d.Calories)
		}
		if d.Protein != 37.5 {
			t.Errorf("%s: expected 37.5g protein, got %v", d.MealType, d.Protein)
		}
	}

	// only workout meals: same fallback on the regular partition
	dist, err = DistributeMacros(dailyTotals, []string{"pre_workout"}, StrategyCarbStrategic)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dist[0].Carbs != 100 {
		t.Errorf("expected 100g carbs, got %v", dist[0].Carbs)
	}
	if dist[0].Calories != 600 {
		t.Errorf("expected 600 kcal, got %v", dist[0].Calories)
	}
}

func TestDistributeMacros_Errors(t *testing.T) {
	if _, err := DistributeMacros(dailyTotals, nil, StrategyBalanced); err == nil {
		t.Error("expected error for empty meal list")
	}
	if _, err := DistributeMacros(dailyTotals, []string{"lunch"}, "keto"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestValidateDistribution(t *testing.T) {
	dist, _ := DistributeMacros(dailyTotals, []string{"breakfast", "lunch", "snack_1", "dinner"}, StrategyBalanced)
	check := ValidateDistribution(dist, dailyTotals)
	if !check.Valid {
		t.Errorf("expected valid distribution, got %+v", check)
	}

	// push one meal 200 kcal over: diff is signed and validity flips
	adjusted, err := AdjustDistribution(dist, 0, PartialMacros{Calories: f(700)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	check = ValidateDistribution(adjusted, dailyTotals)
	if check.Valid || check.CaloriesOK {
		t.Errorf("expected invalid calories, got %+v", check)
	}
	if math.Abs(check.CaloriesDiff - (-200)) > 1e-9 {
		t.Errorf("expected calories diff -200, got %v", check.CaloriesDiff)
	}
	if !check.ProteinOK || !check.CarbsOK || !check.FatsOK {
		t.Errorf("macros should still be within tolerance: %+v", check)
	}
}

func TestValidateDistribution_CustomTolerance(t *testing.T) {
	dist, _ := DistributeMacros(dailyTotals, []string{"breakfast", "lunch", "snack_1", "dinner"}, StrategyBalanced)

	// nudge one meal 40 kcal over: inside the 50 kcal default, outside 10
	adjusted, err := AdjustDistribution(dist, 0, PartialMacros{Calories: f(540)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if check := ValidateDistribution(adjusted, dailyTotals); !check.CaloriesOK {
		t.Errorf("40 kcal drift should pass the default tolerance: %+v", check)
	}
	if check := ValidateDistribution(adjusted, dailyTotals, 10); check.CaloriesOK || check.Valid {
		t.Errorf("40 kcal drift should fail a 10 kcal tolerance: %+v", check)
	}
	// zero keeps the default
	if check := ValidateDistribution(adjusted, dailyTotals, 0); !check.CaloriesOK {
		t.Errorf("zero tolerance argument should fall back to the default: %+v", check)
	}
}

func TestAdjustDistribution(t *testing.T) {
	dist, _ := DistributeMacros(dailyTotals, []string{"breakfast", "lunch"}, StrategyBalanced)

	out, err := AdjustDistribution(dist, 1, PartialMacros{Protein: f(80.25)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[1].Protein != 80.3 {
		t.Errorf("expected protein 80.3, got %v", out[1].Protein)
	}
	if out[1].Calories != dist[1].Calories {
		t.Errorf("calories should be untouched, got %v", out[1].Calories)
	}
	// the input distribution must not be mutated
	if dist[1].Protein != 75 {
		t.Errorf("input distribution mutated: %v", dist[1].Protein)
	}

	if _, err := AdjustDistribution(dist, 5, PartialMacros{}); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func f(v float64) *float64 { return &v }
