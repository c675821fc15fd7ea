package services

import (
	"math"

	"github.com/fabriciomourateam/controle-de-pacientes-sub007/models"
	"github.com/fabriciomourateam/controle-de-pacientes-sub007/utils"
)

type AnalysisService struct {
	catalog CatalogLookup
}

func NewAnalysisService(catalog CatalogLookup) *AnalysisService {
	return &AnalysisService{catalog: catalog}
}

type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Fiber    float64 `json:"fiber"`
	Sodium   float64 `json:"sodium"`
}

// Share of calories contributed by each macro, from macro-calories
// (4 kcal/g protein and carbs, 9 kcal/g fat), not raw grams.
type MacroPercentages struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fats    float64 `json:"fats"`
}

type NutritionReport struct {
	Totals           NutritionTotals  `json:"totals"`
	Percentages      MacroPercentages `json:"percentages"`
	FiberPer1000Kcal float64          `json:"fiber_per_1000kcal"`
	DensityScore     float64          `json:"density_score"`
	Recommendations  []string         `json:"recommendations"`
}

// AnalyzePlan aggregates every food in the plan into totals and derives the
// report. Foods with no catalog match contribute zero rather than failing the
// analysis: incomplete data degrades the report, it never aborts it.
func (s *AnalysisService) AnalyzePlan(plan *models.Plan) (*NutritionReport, error) {
	// resolve each distinct name once, never per food
	seen := map[string]bool{}
	var names []string
	for _, m := range plan.Meals {
		for _, f := range m.Foods {
			if !seen[f.FoodName] {
				seen[f.FoodName] = true
				names = append(names, f.FoodName)
			}
		}
	}
	catalog, err := s.catalog.FindByNames(names)
	if err != nil {
		return nil, err
	}

	var t NutritionTotals
	for _, m := range plan.Meals {
		for _, f := range m.Foods {
			grams := utils.ToGrams(f.Quantity, f.Unit)
			factor := grams / 100.0

			entry, ok := catalog[f.FoodName]
			if ok {
				t.Fiber += entry.Fiber * factor
				t.Sodium += entry.Sodium * factor
			}

			// snapshot values are authoritative when present; the catalog
			// path below must agree with them for the same inputs
			t.Calories += snapOr(f.Calories, entry.Calories*factor, ok)
			t.Protein += snapOr(f.Protein, entry.Protein*factor, ok)
			t.Carbs += snapOr(f.Carbs, entry.Carbs*factor, ok)
			t.Fats += snapOr(f.Fats, entry.Fats*factor, ok)
		}
	}

	report := &NutritionReport{Totals: t}
	report.Percentages = macroPercentages(t.Protein, t.Carbs, t.Fats)
	if t.Calories > 0 {
		report.FiberPer1000Kcal = round2(t.Fiber / t.Calories * 1000)
	}
	report.DensityScore = densityScore(t, report.Percentages, report.FiberPer1000Kcal)
	report.Recommendations = recommendations(t, report.Percentages, report.FiberPer1000Kcal)
	return report, nil
}

func snapOr(snapshot *float64, derived float64, matched bool) float64 {
	if snapshot != nil {
		return *snapshot
	}
	if matched {
		return derived
	}
	return 0
}

func macroPercentages(protein, carbs, fats float64) MacroPercentages {
	proteinKcal := protein * 4
	carbsKcal := carbs * 4
	fatsKcal := fats * 9
	total := proteinKcal + carbsKcal + fatsKcal
	if total <= 0 {
		return MacroPercentages{}
	}
	return MacroPercentages{
		Protein: round2(proteinKcal / total * 100),
		Carbs:   round2(carbsKcal / total * 100),
		Fats:    round2(fatsKcal / total * 100),
	}
}

// densityScore rates overall plan quality on [0,100]. Adjustments are
// independent and additive; the clamp happens once at the end.
func densityScore(t NutritionTotals, pct MacroPercentages, fiberDensity float64) float64 {
	score := 50.0

	switch {
	case t.Protein >= 100 && t.Protein <= 200:
		score += 15
	case t.Protein >= 80 && t.Protein < 100:
		score += 10
	case t.Protein < 80:
		score -= 10
	}

	switch {
	case fiberDensity >= 10:
		score += 15
	case fiberDensity >= 7:
		score += 10
	case fiberDensity < 5:
		score -= 10
	}

	if t.Sodium > 3000 {
		score -= 15
	} else if t.Sodium > 2300 {
		score -= 5
	}

	if pct.Protein >= 25 && pct.Protein <= 35 {
		score += 5
	}
	if pct.Carbs >= 40 && pct.Carbs <= 50 {
		score += 5
	}
	if pct.Fats >= 20 && pct.Fats <= 30 {
		score += 5
	}

	return math.Max(0, math.Min(100, score))
}

func recommendations(t NutritionTotals, pct MacroPercentages, fiberDensity float64) []string {
	var recs []string

	if t.Protein < 80 {
		recs = append(recs, "Considere aumentar a ingestão de proteína (mínimo 80g por dia)")
	} else if t.Protein > 200 {
		recs = append(recs, "Ingestão de proteína muito alta, considere reduzir")
	}
	if fiberDensity < 7 {
		recs = append(recs, "Aumente o consumo de fibras: inclua mais verduras, legumes e grãos integrais")
	}
	if t.Sodium > 2300 {
		recs = append(recs, "Sódio acima do recomendado, reduza alimentos processados")
	}
	if pct.Protein < 20 {
		recs = append(recs, "Percentual de proteína baixo em relação às calorias totais")
	}
	if pct.Carbs < 35 {
		recs = append(recs, "Percentual de carboidratos abaixo da faixa recomendada")
	}
	if pct.Fats < 15 {
		recs = append(recs, "Percentual de gorduras muito baixo, inclua fontes de gorduras boas")
	}

	if len(recs) == 0 {
		recs = append(recs, "Plano bem balanceado, continue assim!")
	}
	return recs
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
