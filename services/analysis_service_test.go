package services

import (
	"math"
	"strings"
	"testing"

	"github.com/fabriciomourateam/controle-de-pacientes-sub007/models"
)

// fakeCatalog serves tests without a database.
type fakeCatalog map[string]models.CatalogFood

func (f fakeCatalog) FindByNames(names []string) (map[string]models.CatalogFood, error) {
	out := map[string]models.CatalogFood{}
	for _, n := range names {
		if entry, ok := f[n]; ok {
			out[n] = entry
		}
	}
	return out, nil
}

func (f fakeCatalog) FindSimilar(excluding string) ([]models.CatalogFood, error) {
	var out []models.CatalogFood
	for _, entry := range f {
		if entry.Name != excluding {
			out = append(out, entry)
		}
	}
	return out, nil
}

func planWithFoods(foods ...models.FoodItem) *models.Plan {
	return &models.Plan{
		Meals: []models.Meal{{MealType: "lunch", Foods: foods}},
	}
}

func almost(a, b float64) bool { return math.Abs(a-b) < 0.01 }

func TestAnalyzePlan_TotalsFromCatalog(t *testing.T) {
	catalog := fakeCatalog{
		"Peito de frango": {Name: "Peito de frango", Calories: 100, Protein: 10, Carbs: 10, Fats: 10, Fiber: 5, Sodium: 100},
	}
	svc := NewAnalysisService(catalog)

	report, err := svc.AnalyzePlan(planWithFoods(
		models.FoodItem{FoodName: "Peito de frango", Quantity: 200, Unit: "g"},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tt := report.Totals
	if !almost(tt.Calories, 200) || !almost(tt.Protein, 20) || !almost(tt.Carbs, 20) || !almost(tt.Fats, 20) {
		t.Errorf("unexpected totals: %+v", tt)
	}
	if !almost(tt.Fiber, 10) || !almost(tt.Sodium, 200) {
		t.Errorf("unexpected fiber/sodium: %+v", tt)
	}

	// macro-calories: 80 + 80 + 180 = 340
	if !almost(report.Percentages.Protein, 23.53) {
		t.Errorf("expected protein%% 23.53, got %v", report.Percentages.Protein)
	}
	if !almost(report.Percentages.Fats, 52.94) {
		t.Errorf("expected fats%% 52.94, got %v", report.Percentages.Fats)
	}
	if !almost(report.FiberPer1000Kcal, 50) {
		t.Errorf("expected fiber density 50, got %v", report.FiberPer1000Kcal)
	}
}

func TestAnalyzePlan_SnapshotIsAuthoritative(t *testing.T) {
	catalog := fakeCatalog{
		"Arroz": {Name: "Arroz", Calories: 130, Protein: 2.5, Carbs: 28, Fats: 0.2},
	}
	svc := NewAnalysisService(catalog)

	// snapshot disagrees with the catalog on purpose
	report, err := svc.AnalyzePlan(planWithFoods(
		models.FoodItem{FoodName: "Arroz", Quantity: 100, Unit: "g",
			Calories: f(999), Protein: f(1), Carbs: f(2), Fats: f(3)},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almost(report.Totals.Calories, 999) || !almost(report.Totals.Protein, 1) {
		t.Errorf("snapshot should win over catalog: %+v", report.Totals)
	}
}

func TestAnalyzePlan_DerivedMatchesSnapshotPath(t *testing.T) {
	entry := models.CatalogFood{Name: "Aveia", Calories: 390, Protein: 14, Carbs: 66, Fats: 7}
	catalog := fakeCatalog{"Aveia": entry}
	svc := NewAnalysisService(catalog)

	derived, err := svc.AnalyzePlan(planWithFoods(
		models.FoodItem{FoodName: "Aveia", Quantity: 50, Unit: "g"},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snapshotted, err := svc.AnalyzePlan(planWithFoods(
		models.FoodItem{FoodName: "Aveia", Quantity: 50, Unit: "g",
			Calories: f(195), Protein: f(7), Carbs: f(33), Fats: f(3.5)},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almost(derived.Totals.Calories, snapshotted.Totals.Calories) ||
		!almost(derived.Totals.Protein, snapshotted.Totals.Protein) {
		t.Errorf("derived %+v and snapshot %+v paths disagree", derived.Totals, snapshotted.Totals)
	}
}

func TestAnalyzePlan_UnmatchedFoodContributesZero(t *testing.T) {
	svc := NewAnalysisService(fakeCatalog{})
	report, err := svc.AnalyzePlan(planWithFoods(
		models.FoodItem{FoodName: "Comida misteriosa", Quantity: 500, Unit: "g"},
	))
	if err != nil {
		t.Fatalf("analysis must not fail on unmatched foods: %v", err)
	}
	if report.Totals.Calories != 0 || report.Totals.Protein != 0 {
		t.Errorf("unmatched food should contribute zero, got %+v", report.Totals)
	}
}

func TestAnalyzePlan_DensityScoreBounds(t *testing.T) {
	svc := NewAnalysisService(fakeCatalog{})

	extremes := []models.FoodItem{
		{FoodName: "x", Quantity: 1, Unit: "g", Calories: f(100000), Protein: f(10000), Carbs: f(0), Fats: f(0)},
		{FoodName: "x", Quantity: 1, Unit: "g", Calories: f(0), Protein: f(0), Carbs: f(0), Fats: f(0)},
		{FoodName: "x", Quantity: 1, Unit: "g", Calories: f(1), Protein: f(150), Carbs: f(0.1), Fats: f(0.1)},
	}
	for i, food := range extremes {
		report, err := svc.AnalyzePlan(planWithFoods(food))
		if err != nil {
			t.Fatalf("case %d: unexpected error: %v", i, err)
		}
		if report.DensityScore < 0 || report.DensityScore > 100 {
			t.Errorf("case %d: score %v out of [0,100]", i, report.DensityScore)
		}
	}
}

func TestAnalyzePlan_RecommendationsOrder(t *testing.T) {
	// low protein, no fiber, plenty of carbs/fats: three findings fire, in
	// check order (protein amount, fiber density, protein percentage)
	catalog := fakeCatalog{
		"Macarrão": {Name: "Macarrão", Calories: 2300, Protein: 50, Carbs: 300, Fats: 100},
	}
	svc := NewAnalysisService(catalog)
	report, err := svc.AnalyzePlan(planWithFoods(
		models.FoodItem{FoodName: "Macarrão", Quantity: 100, Unit: "g"},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Recommendations) != 3 {
		t.Fatalf("expected 3 recommendations, got %d: %v", len(report.Recommendations), report.Recommendations)
	}
	if !strings.Contains(report.Recommendations[0], "proteína") {
		t.Errorf("first recommendation should be about protein amount: %q", report.Recommendations[0])
	}
	if !strings.Contains(report.Recommendations[1], "fibras") {
		t.Errorf("second recommendation should be about fiber: %q", report.Recommendations[1])
	}
	if !strings.Contains(report.Recommendations[2], "Percentual de proteína") {
		t.Errorf("third recommendation should be about protein share: %q", report.Recommendations[2])
	}
}

func TestAnalyzePlan_BalancedPlanSingleMessage(t *testing.T) {
	catalog := fakeCatalog{
		"Prato completo": {Name: "Prato completo", Calories: 2000, Protein: 150, Carbs: 200, Fats: 60, Fiber: 20, Sodium: 1000},
	}
	svc := NewAnalysisService(catalog)
	report, err := svc.AnalyzePlan(planWithFoods(
		models.FoodItem{FoodName: "Prato completo", Quantity: 100, Unit: "g"},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Recommendations) != 1 {
		t.Fatalf("expected single affirmative message, got %v", report.Recommendations)
	}
	if !strings.Contains(report.Recommendations[0], "balanceado") {
		t.Errorf("unexpected message: %q", report.Recommendations[0])
	}
}

func TestAnalyzePlan_EmptyPlan(t *testing.T) {
	svc := NewAnalysisService(fakeCatalog{})
	report, err := svc.AnalyzePlan(&models.Plan{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Totals.Calories != 0 || report.FiberPer1000Kcal != 0 {
		t.Errorf("empty plan should produce zero totals: %+v", report)
	}
	if report.Percentages.Protein != 0 {
		t.Errorf("zero denominator should give zero percentages: %+v", report.Percentages)
	}
}
