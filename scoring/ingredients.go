package scoring

import (
	"strings"

	"nutriguide/dataset"
)

type ConcernKind string

const (
	AddedSugar         ConcernKind = "added_sugar"
	HighSodiumAdditive ConcernKind = "high_sodium_additive"
	UnhealthyFat       ConcernKind = "unhealthy_fat"
)

type Severity string

const (
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

var concernTerms = []struct {
	kind     ConcernKind
	severity Severity
	terms    []string
}{
	{AddedSugar, SeverityModerate, []string{"sugar", "glucose", "fructose", "corn syrup", "high fructose corn syrup", "dextrose"}},
	{HighSodiumAdditive, SeverityModerate, []string{"sodium", "msg", "monosodium glutamate", "sodium benzoate", "sodium nitrite"}},
	{UnhealthyFat, SeverityHigh, []string{"hydrogenated", "partially hydrogenated", "trans fat"}},
}

type Concern struct {
	Ingredient string      `json:"ingredient"`
	Concern    ConcernKind `json:"concern"`
	Severity   Severity    `json:"severity"`
}

type IngredientReport struct {
	OK                 bool      `json:"ok"`
	ProductCategory    *string   `json:"product_category"`
	IngredientsChecked int       `json:"ingredients_checked"`
	Concerns           []Concern `json:"concerns"`
	HasConcerns        bool      `json:"has_concerns"`
}

// CheckIngredientConcerns tests every ingredient against each term set on its
// own, so a single ingredient can raise more than one concern.
func CheckIngredientConcerns(ingredients []string, productCategory *string) IngredientReport {
	concerns := make([]Concern, 0)
	for _, raw := range ingredients {
		ing := dataset.Normalize(raw)
		for _, set := range concernTerms {
			if containsAny(ing, set.terms) {
				concerns = append(concerns, Concern{Ingredient: ing, Concern: set.kind, Severity: set.severity})
			}
		}
	}

	return IngredientReport{
		OK:                 true,
		ProductCategory:    productCategory,
		IngredientsChecked: len(ingredients),
		Concerns:           concerns,
		HasConcerns:        len(concerns) > 0,
	}
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
