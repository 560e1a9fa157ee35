package scoring

import (
	"sort"

	"nutriguide/dataset"
)

type Recommendation string

const (
	Avoid       Recommendation = "AVOID"
	Caution     Recommendation = "CAUTION"
	Recommended Recommendation = "RECOMMENDED"
	Acceptable  Recommendation = "ACCEPTABLE"
)

// NutritionInfo is the per-serving nutrient panel analysed by AnalyzeProduct.
type NutritionInfo struct {
	Calories     float64 `json:"calories"`
	TotalCarbs   float64 `json:"total_carbs"`
	Sugars       float64 `json:"sugars"`
	AddedSugars  float64 `json:"added_sugars"`
	DietaryFiber float64 `json:"dietary_fiber"`
	Protein      float64 `json:"protein"`
	Sodium       float64 `json:"sodium"`
}

// NutritionFromMap coerces a caller-supplied panel. Unknown keys are ignored.
func NutritionFromMap(m map[string]any) NutritionInfo {
	return NutritionInfo{
		Calories:     dataset.Number(m["calories"]),
		TotalCarbs:   dataset.Number(m["total_carbs"]),
		Sugars:       dataset.Number(m["sugars"]),
		AddedSugars:  dataset.Number(m["added_sugars"]),
		DietaryFiber: dataset.Number(m["dietary_fiber"]),
		Protein:      dataset.Number(m["protein"]),
		Sodium:       dataset.Number(m["sodium"]),
	}
}

// NutritionFromFood maps a dataset food onto a panel; fiber becomes dietary_fiber.
func NutritionFromFood(f dataset.Food) NutritionInfo {
	return NutritionInfo{
		Calories:     f.Calories,
		TotalCarbs:   f.TotalCarbs,
		Sugars:       f.Sugars,
		DietaryFiber: f.Fiber,
		Protein:      f.Protein,
		Sodium:       f.Sodium,
	}
}

type KeyNutrients struct {
	Calories    float64 `json:"calories"`
	TotalCarbs  float64 `json:"total_carbs"`
	Fiber       float64 `json:"fiber"`
	Sugars      float64 `json:"sugars"`
	AddedSugars float64 `json:"added_sugars"`
	Protein     float64 `json:"protein"`
	Sodium      float64 `json:"sodium"`
}

type ProductAnalysis struct {
	OK             bool           `json:"ok"`
	ProductName    string         `json:"product_name"`
	Barcode        *string        `json:"barcode"`
	Recommendation Recommendation `json:"recommendation"`
	Reason         string         `json:"reason"`
	NetCarbs       float64        `json:"net_carbs"`
	KeyNutrients   KeyNutrients   `json:"key_nutrients"`
}

// AnalyzeProduct classifies a product. When info is nil the panel is taken from
// the dataset food with the same name.
func AnalyzeProduct(ds *dataset.Dataset, productName string, info *NutritionInfo, barcode *string) (ProductAnalysis, error) {
	if info == nil {
		food, ok := ds.FindFoodByName(productName)
		if !ok {
			return ProductAnalysis{}, &NotFoundError{Msg: "No nutrition_info provided and product not found in mock foods"}
		}
		n := NutritionFromFood(food)
		info = &n
	}

	rec, reason := Classify(*info)
	return ProductAnalysis{
		OK:             true,
		ProductName:    productName,
		Barcode:        barcode,
		Recommendation: rec,
		Reason:         reason,
		NetCarbs:       round1(netCarbs(info.TotalCarbs, info.DietaryFiber)),
		KeyNutrients: KeyNutrients{
			Calories:    info.Calories,
			TotalCarbs:  info.TotalCarbs,
			Fiber:       info.DietaryFiber,
			Sugars:      info.Sugars,
			AddedSugars: info.AddedSugars,
			Protein:     info.Protein,
			Sodium:      info.Sodium,
		},
	}, nil
}

// Classify runs the decision list; the first matching rule wins.
func Classify(n NutritionInfo) (Recommendation, string) {
	net := netCarbs(n.TotalCarbs, n.DietaryFiber)
	switch {
	case n.AddedSugars > 10 || n.Sugars > 20:
		return Avoid, "High sugar"
	case net > 35:
		return Caution, "High net carbs"
	case n.Sodium > 400:
		return Caution, "High sodium"
	case n.DietaryFiber >= 3 && net < 25:
		return Recommended, "Good fiber with moderate carbs"
	default:
		return Acceptable, "Moderate impact"
	}
}

type ComparisonFocus string

const (
	GlycemicImpact   ComparisonFocus = "glycemic_impact"
	CarbContent      ComparisonFocus = "carb_content"
	OverallNutrition ComparisonFocus = "overall_nutrition"
)

// ProductFacts is one entry of a comparison request.
type ProductFacts struct {
	Name          string
	Carbs         float64
	Fiber         float64
	Sugars        float64
	Protein       float64
	GlycemicIndex float64
}

type ScoredProduct struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	NetCarbs float64 `json:"net_carbs"`
}

type Comparison struct {
	OK              bool            `json:"ok"`
	ComparisonFocus ComparisonFocus `json:"comparison_focus"`
	BestChoice      *string         `json:"best_choice"`
	Results         []ScoredProduct `json:"results"`
}

// CompareProducts scores each product for focus and orders them best first.
// Unknown focus values score as glycemic impact. Ties keep input order.
func CompareProducts(products []ProductFacts, focus ComparisonFocus) Comparison {
	if focus == "" {
		focus = GlycemicImpact
	}

	scored := make([]ScoredProduct, 0, len(products))
	for _, p := range products {
		net := netCarbs(p.Carbs, p.Fiber)

		var score float64
		switch focus {
		case CarbContent:
			score = 100 - min(100, net*2)
		case OverallNutrition:
			score = p.Protein*3 + p.Fiber*4 - net*2 - p.Sugars*1.5
		default:
			score = 100 - net*2 - p.Sugars*1.5 - p.GlycemicIndex*0.3
		}

		scored = append(scored, ScoredProduct{Name: p.Name, Score: round1(score), NetCarbs: round1(net)})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	out := Comparison{OK: true, ComparisonFocus: focus, Results: scored}
	if len(scored) > 0 {
		best := scored[0].Name
		out.BestChoice = &best
	}
	return out
}

const maxAlternatives = 8

type Alternative struct {
	FoodName   string   `json:"food_name"`
	Tags       []string `json:"tags"`
	Calories   float64  `json:"calories"`
	TotalCarbs float64  `json:"total_carbs"`
	Fiber      float64  `json:"fiber"`
	Sugars     float64  `json:"sugars"`
	Sodium     float64  `json:"sodium"`
}

type Alternatives struct {
	OK              bool          `json:"ok"`
	OriginalProduct string        `json:"original_product"`
	Category        string        `json:"category"`
	Preferences     []string      `json:"preferences"`
	Alternatives    []Alternative `json:"alternatives"`
}

// SuggestAlternatives ranks same-category foods by fiber (high first), then
// total carbs, sugars and sodium (low first). With preferences, a food needs at
// least one matching tag.
func SuggestAlternatives(ds *dataset.Dataset, originalProduct, category string, preferences []string) Alternatives {
	cat := dataset.Normalize(category)
	want := make(map[string]bool, len(preferences))
	for _, p := range preferences {
		want[dataset.Normalize(p)] = true
	}

	foods := ds.FilterFoods(func(f dataset.Food) bool {
		if dataset.Normalize(f.Category) != cat {
			return false
		}
		if len(want) == 0 {
			return true
		}
		for _, tag := range f.Tags {
			if want[dataset.Normalize(tag)] {
				return true
			}
		}
		return false
	})

	sort.SliceStable(foods, func(i, j int) bool {
		a, b := foods[i], foods[j]
		if a.Fiber != b.Fiber {
			return a.Fiber > b.Fiber
		}
		if a.TotalCarbs != b.TotalCarbs {
			return a.TotalCarbs < b.TotalCarbs
		}
		if a.Sugars != b.Sugars {
			return a.Sugars < b.Sugars
		}
		return a.Sodium < b.Sodium
	})

	if len(foods) > maxAlternatives {
		foods = foods[:maxAlternatives]
	}

	alts := make([]Alternative, 0, len(foods))
	for _, f := range foods {
		alts = append(alts, Alternative{
			FoodName:   f.Name,
			Tags:       f.Tags,
			Calories:   f.Calories,
			TotalCarbs: f.TotalCarbs,
			Fiber:      f.Fiber,
			Sugars:     f.Sugars,
			Sodium:     f.Sodium,
		})
	}

	if preferences == nil {
		preferences = []string{}
	}
	return Alternatives{
		OK:              true,
		OriginalProduct: originalProduct,
		Category:        category,
		Preferences:     preferences,
		Alternatives:    alts,
	}
}
