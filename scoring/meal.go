package scoring

import (
	"nutriguide/dataset"
)

type Impact string

const (
	ImpactHigh     Impact = "HIGH"
	ImpactModerate Impact = "MODERATE"
	ImpactLow      Impact = "LOW"
)

const mealTip = "Add protein/fiber to reduce sugar spikes (e.g., yogurt/vegetables)."

type MealComponent struct {
	Food  string
	Carbs float64
}

type MealImpact struct {
	OK                  bool    `json:"ok"`
	TotalCarbs          float64 `json:"total_carbs"`
	EstimatedTotalSugar float64 `json:"estimated_total_sugars"`
	MealImpact          Impact  `json:"meal_impact"`
	Tip                 string  `json:"tip"`
}

// CalculateMealImpact sums the stated carbs of every component and the dataset
// sugars of the components it can resolve by name.
func CalculateMealImpact(ds *dataset.Dataset, components []MealComponent) MealImpact {
	var carbs, sugars float64
	for _, c := range components {
		carbs += c.Carbs
		if food, ok := ds.FindFoodByName(c.Food); ok {
			sugars += food.Sugars
		}
	}

	impact := ImpactLow
	switch {
	case carbs >= 60 || sugars >= 25:
		impact = ImpactHigh
	case carbs >= 30:
		impact = ImpactModerate
	}

	return MealImpact{
		OK:                  true,
		TotalCarbs:          round1(carbs),
		EstimatedTotalSugar: round1(sugars),
		MealImpact:          impact,
		Tip:                 mealTip,
	}
}

var portionGuidance = map[string]string{
	"bread":      "1 slice per meal (prefer whole grain).",
	"carbs":      "1/2 to 1 cup cooked per meal (prefer high-fiber).",
	"protein":    "90–120g cooked portion (palm-size).",
	"fruit":      "1 medium fruit or 1 cup chopped.",
	"dairy":      "1 cup milk/yogurt or 30–40g cheese.",
	"vegetables": "2 cups non-starchy vegetables (more is better).",
	"fast-food":  "Occasional; keep portion small and limit sodium.",
}

const (
	defaultPortion = "Use a moderate portion and balance with protein/fiber."
	snackCaveat    = " For snacks: keep it lighter and avoid high sugar."
	dinnerCaveat   = " For dinner: reduce carbs slightly if possible."
)

type PortionGuidance struct {
	OK              bool    `json:"ok"`
	FoodCategory    string  `json:"food_category"`
	FoodItem        string  `json:"food_item"`
	MealContext     *string `json:"meal_context"`
	PortionGuidance string  `json:"portion_guidance"`
}

// GetPortionGuidance looks up the category's portion rule and adds a caveat for
// snack or dinner contexts.
func GetPortionGuidance(category, item string, mealContext *string) PortionGuidance {
	text, ok := portionGuidance[dataset.Normalize(category)]
	if !ok {
		text = defaultPortion
	}

	if mealContext != nil {
		switch dataset.Normalize(*mealContext) {
		case "snack", "between meals":
			text += snackCaveat
		case "dinner":
			text += dinnerCaveat
		}
	}

	return PortionGuidance{
		OK:              true,
		FoodCategory:    category,
		FoodItem:        item,
		MealContext:     mealContext,
		PortionGuidance: text,
	}
}
