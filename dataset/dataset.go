package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Normalize trims surrounding whitespace and lower-cases s. Every name, category
// and tag comparison in the dataset goes through it.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Number coerces a decoded JSON value into a non-negative float64.
// Missing, non-numeric and negative values become 0.
func Number(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		f, _ = n.Float64()
	case string:
		f, _ = strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

type User struct {
	UserID          int      `json:"user_id"`
	Name            string   `json:"name,omitempty"`
	Age             int      `json:"age,omitempty"`
	ChronicDiseases []string `json:"chronic_diseases"`
	Medications     []string `json:"medications"`
}

type Food struct {
	Name       string   `json:"food_name"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
	Calories   float64  `json:"calories"`
	TotalCarbs float64  `json:"total_carbs"`
	Sugars     float64  `json:"sugars"`
	Protein    float64  `json:"protein"`
	Fiber      float64  `json:"fiber"`
	Fat        float64  `json:"fat"`
	Sodium     float64  `json:"sodium"`
}

// UnmarshalJSON tolerates missing or non-numeric nutrient fields.
func (f *Food) UnmarshalJSON(b []byte) error {
	var raw struct {
		Name       string   `json:"food_name"`
		Category   string   `json:"category"`
		Tags       []string `json:"tags"`
		Calories   any      `json:"calories"`
		TotalCarbs any      `json:"total_carbs"`
		Sugars     any      `json:"sugars"`
		Protein    any      `json:"protein"`
		Fiber      any      `json:"fiber"`
		Fat        any      `json:"fat"`
		Sodium     any      `json:"sodium"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	tags := raw.Tags
	if tags == nil {
		tags = []string{}
	}
	*f = Food{
		Name:       raw.Name,
		Category:   raw.Category,
		Tags:       tags,
		Calories:   Number(raw.Calories),
		TotalCarbs: Number(raw.TotalCarbs),
		Sugars:     Number(raw.Sugars),
		Protein:    Number(raw.Protein),
		Fiber:      Number(raw.Fiber),
		Fat:        Number(raw.Fat),
		Sodium:     Number(raw.Sodium),
	}
	return nil
}

type Drug struct {
	Name       string   `json:"drug_name"`
	AvoidFoods []string `json:"avoid_foods"`
	Notes      string   `json:"notes"`
}

// MealPlan keeps the whole plan record so it can be handed back untouched.
type MealPlan struct {
	Condition string
	Plan      map[string]any
}

func (m *MealPlan) UnmarshalJSON(b []byte) error {
	var plan map[string]any
	if err := json.Unmarshal(b, &plan); err != nil {
		return err
	}
	cond, _ := plan["condition"].(string)
	*m = MealPlan{Condition: cond, Plan: plan}
	return nil
}

func (m MealPlan) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Plan)
}

// Dataset is a read-only view over the users, foods, drugs and meal plans
// collections. It is never mutated after Parse.
type Dataset struct {
	Users     []User     `json:"users"`
	Foods     []Food     `json:"foods"`
	Drugs     []Drug     `json:"drugs"`
	MealPlans []MealPlan `json:"meal_plans"`
}

// Parse decodes a dataset document. Absent collections are left empty.
func Parse(b []byte) (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(b, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return &ds, nil
}

func (d *Dataset) FindUserByID(id int) (User, bool) {
	for _, u := range d.Users {
		if u.UserID == id {
			return u, true
		}
	}
	return User{}, false
}

func (d *Dataset) FindFoodByName(name string) (Food, bool) {
	n := Normalize(name)
	for _, f := range d.Foods {
		if Normalize(f.Name) == n {
			return f, true
		}
	}
	return Food{}, false
}

// SearchFoods returns foods whose normalized name contains query, optionally
// restricted to an exact normalized category.
func (d *Dataset) SearchFoods(query, category string) []Food {
	q := Normalize(query)
	cat := Normalize(category)
	return d.FilterFoods(func(f Food) bool {
		if !strings.Contains(Normalize(f.Name), q) {
			return false
		}
		return category == "" || Normalize(f.Category) == cat
	})
}

func (d *Dataset) FilterFoods(keep func(Food) bool) []Food {
	out := make([]Food, 0)
	for _, f := range d.Foods {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

// ListDrugsAvoiding returns, for each medication in order, the drug records
// with that name whose avoid list contains foodName.
func (d *Dataset) ListDrugsAvoiding(foodName string, medications []string) []Drug {
	food := Normalize(foodName)
	out := make([]Drug, 0)
	for _, med := range medications {
		m := Normalize(med)
		for _, drug := range d.Drugs {
			if Normalize(drug.Name) != m {
				continue
			}
			for _, avoid := range drug.AvoidFoods {
				if Normalize(avoid) == food {
					out = append(out, drug)
					break
				}
			}
		}
	}
	return out
}

func (d *Dataset) FindMealPlanForCondition(condition string) (MealPlan, bool) {
	c := Normalize(condition)
	for _, p := range d.MealPlans {
		if Normalize(p.Condition) == c {
			return p, true
		}
	}
	return MealPlan{}, false
}
