package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/fabriciomourateam/controle-de-pacientes-sub007/utils"
)

// Relative-difference weights for the similarity metric. Calories dominate
// because the quantity adjustment is isocaloric.
const (
	weightCalories = 0.40
	weightProtein  = 0.25
	weightCarbs    = 0.20
	weightFats     = 0.15

	defaultSubstitutionLimit = 10
)

type SubstitutionService struct {
	catalog CatalogLookup
}

func NewSubstitutionService(catalog CatalogLookup) *SubstitutionService {
	return &SubstitutionService{catalog: catalog}
}

// OriginalFood describes the food being replaced. Macro values are the totals
// for the given quantity, not per 100g.
type OriginalFood struct {
	FoodName string  `json:"food_name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type FoodSubstitution struct {
	FoodName        string  `json:"food_name"`
	Category        string  `json:"category"`
	SimilarityScore float64 `json:"similarity_score"`
	// QuantityGrams delivers the same calories as the original quantity.
	QuantityGrams float64 `json:"quantity_grams"`

	// candidate profile per 100g, for display
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// FindSubstitutes ranks all active catalog foods (except the original) by
// nutritional similarity and returns the top limit results. Ties keep the
// catalog order.
func (s *SubstitutionService) FindSubstitutes(original OriginalFood, limit int) ([]FoodSubstitution, error) {
	if limit <= 0 {
		limit = defaultSubstitutionLimit
	}
	grams := utils.ToGrams(original.Quantity, original.Unit)
	if grams <= 0 {
		return nil, fmt.Errorf("original quantity must be positive")
	}

	// original profile scaled to a 100g basis
	scale := 100.0 / grams
	origKcal100 := original.Calories * scale
	origProt100 := original.Protein * scale
	origCarb100 := original.Carbs * scale
	origFat100 := original.Fats * scale

	candidates, err := s.catalog.FindSimilar(original.FoodName)
	if err != nil {
		return nil, err
	}

	subs := make([]FoodSubstitution, 0, len(candidates))
	for _, c := range candidates {
		d := weightCalories*relativeDiff(origKcal100, c.Calories) +
			weightProtein*relativeDiff(origProt100, c.Protein) +
			weightCarbs*relativeDiff(origCarb100, c.Carbs) +
			weightFats*relativeDiff(origFat100, c.Fats)
		score := math.Max(0, math.Min(100, (1-d)*100))

		// isocaloric quantity; a zero-kcal candidate keeps the original
		// gram amount rather than dividing by zero
		qty := grams
		if c.Calories > 0 {
			qty = grams * origKcal100 / c.Calories
		}

		subs = append(subs, FoodSubstitution{
			FoodName:        c.Name,
			Category:        c.Category,
			SimilarityScore: round2(score),
			QuantityGrams:   round1(qty),
			Calories:        c.Calories,
			Protein:         c.Protein,
			Carbs:           c.Carbs,
			Fats:            c.Fats,
		})
	}

	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].SimilarityScore > subs[j].SimilarityScore
	})
	if len(subs) > limit {
		subs = subs[:limit]
	}
	return subs, nil
}

// relativeDiff is |a−b| normalized by the larger magnitude, floored at 1 so
// two zero values compare as identical instead of dividing by zero.
func relativeDiff(a, b float64) float64 {
	return math.Abs(a-b) / math.Max(math.Max(a, b), 1)
}
