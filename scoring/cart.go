package scoring

import (
	"encoding/json"

	"nutriguide/dataset"
)

const (
	itemSugarFlag   = 20.0
	itemCarbFlag    = 60.0
	itemSodiumFlag  = 600.0
	cartSugarLimit  = 40.0
	cartSodiumLimit = 1500.0
	planProteinMin  = 30.0
)

type CartItem struct {
	Name     string
	Quantity float64
}

type Macros struct {
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Sugars   float64 `json:"sugars"`
	Protein  float64 `json:"protein"`
	Fiber    float64 `json:"fiber"`
	Sodium   float64 `json:"sodium"`
}

func (m Macros) add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Carbs:    m.Carbs + o.Carbs,
		Sugars:   m.Sugars + o.Sugars,
		Protein:  m.Protein + o.Protein,
		Fiber:    m.Fiber + o.Fiber,
		Sodium:   m.Sodium + o.Sodium,
	}
}

func (m Macros) rounded() Macros {
	return Macros{
		Calories: round1(m.Calories),
		Carbs:    round1(m.Carbs),
		Sugars:   round1(m.Sugars),
		Protein:  round1(m.Protein),
		Fiber:    round1(m.Fiber),
		Sodium:   round1(m.Sodium),
	}
}

type CartLine struct {
	Name     string
	Quantity float64
	Found    bool
	Category string
	Tags     []string
	Macros   Macros
	Flags    []string
}

// MarshalJSON renders unresolved lines with only name, quantity and found.
func (l CartLine) MarshalJSON() ([]byte, error) {
	if !l.Found {
		return json.Marshal(struct {
			Name     string  `json:"name"`
			Quantity float64 `json:"quantity"`
			Found    bool    `json:"found"`
		}{l.Name, l.Quantity, false})
	}
	return json.Marshal(struct {
		Name     string   `json:"name"`
		Quantity float64  `json:"quantity"`
		Found    bool     `json:"found"`
		Category string   `json:"category"`
		Tags     []string `json:"tags"`
		Macros   Macros   `json:"macros"`
		Flags    []string `json:"flags"`
	}{l.Name, l.Quantity, true, l.Category, l.Tags, l.Macros, l.Flags})
}

type CartSummary struct {
	TotalCalories float64 `json:"total_calories"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalSugars   float64 `json:"total_sugars"`
	TotalProtein  float64 `json:"total_protein"`
	TotalFiber    float64 `json:"total_fiber"`
	TotalSodium   float64 `json:"total_sodium"`
}

type CartReview struct {
	OK           bool        `json:"ok"`
	MealPlanning bool        `json:"meal_planning"`
	Summary      CartSummary `json:"summary"`
	Items        []CartLine  `json:"items"`
	Warnings     []string    `json:"warnings"`
}

// ReviewCart scales each resolved item's nutrients by its quantity, flags heavy
// items and totals the cart. Unresolved items are reported but never counted.
// Quantities of zero or less count as one.
func ReviewCart(ds *dataset.Dataset, items []CartItem, mealPlanning bool) CartReview {
	var total Macros
	lines := make([]CartLine, 0, len(items))
	warnings := make([]string, 0)

	for _, item := range items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}

		food, ok := ds.FindFoodByName(item.Name)
		if !ok {
			lines = append(lines, CartLine{Name: item.Name, Quantity: qty})
			warnings = append(warnings, "Item not found in foods DB: "+item.Name)
			continue
		}

		m := Macros{
			Calories: food.Calories * qty,
			Carbs:    food.TotalCarbs * qty,
			Sugars:   food.Sugars * qty,
			Protein:  food.Protein * qty,
			Fiber:    food.Fiber * qty,
			Sodium:   food.Sodium * qty,
		}
		total = total.add(m)

		flags := make([]string, 0)
		if m.Sugars >= itemSugarFlag {
			flags = append(flags, "high-sugar")
		}
		if m.Carbs >= itemCarbFlag {
			flags = append(flags, "high-carb")
		}
		if m.Sodium >= itemSodiumFlag {
			flags = append(flags, "high-sodium")
		}

		tags := food.Tags
		if tags == nil {
			tags = []string{}
		}
		lines = append(lines, CartLine{
			Name:     food.Name,
			Quantity: qty,
			Found:    true,
			Category: food.Category,
			Tags:     tags,
			Macros:   m.rounded(),
			Flags:    flags,
		})
	}

	if total.Sugars >= cartSugarLimit {
		warnings = append(warnings, "Cart sugar is high (estimated).")
	}
	if total.Sodium >= cartSodiumLimit {
		warnings = append(warnings, "Cart sodium is high (estimated).")
	}
	if mealPlanning && total.Protein < planProteinMin {
		warnings = append(warnings, "Low protein for meal planning (consider adding protein source).")
	}

	t := total.rounded()
	return CartReview{
		OK:           true,
		MealPlanning: mealPlanning,
		Summary: CartSummary{
			TotalCalories: t.Calories,
			TotalCarbs:    t.Carbs,
			TotalSugars:   t.Sugars,
			TotalProtein:  t.Protein,
			TotalFiber:    t.Fiber,
			TotalSodium:   t.Sodium,
		},
		Items:    lines,
		Warnings: warnings,
	}
}
