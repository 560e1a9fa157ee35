package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"nutriguide/dataset"
	"nutriguide/scoring"
)

type MealImpactCalculate struct{ data dataset.Provider }

func NewMealImpactCalculate(data dataset.Provider) *MealImpactCalculate {
	return &MealImpactCalculate{data: data}
}

func (t *MealImpactCalculate) Name() string  { return "calculate_meal_impact" }
func (t *MealImpactCalculate) Title() string { return "Calculate Meal Impact" }
func (t *MealImpactCalculate) Description() string {
	return "Estimates a meal's blood-sugar impact (LOW, MODERATE, HIGH) from its carbs and known sugars."
}
func (t *MealImpactCalculate) Usage() string {
	return usage(t.Name(), "meal_components:list[{food,carbs}]")
}

func (t *MealImpactCalculate) InputSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"meal_components": arrayOf(&jsonschema.Schema{Type: "object"}),
	}, "meal_components")
}

func (t *MealImpactCalculate) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	raw, err := objectList(input, "meal_components")
	if err != nil {
		return nil, err
	}
	ds, err := t.data.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	components := make([]scoring.MealComponent, 0, len(raw))
	for _, c := range raw {
		components = append(components, scoring.MealComponent{
			Food:  textField(c, "food"),
			Carbs: dataset.Number(c["carbs"]),
		})
	}
	return toMap(scoring.CalculateMealImpact(ds, components))
}

type PortionGuidanceGet struct{}

func NewPortionGuidanceGet() *PortionGuidanceGet { return &PortionGuidanceGet{} }

func (t *PortionGuidanceGet) Name() string  { return "get_portion_guidance" }
func (t *PortionGuidanceGet) Title() string { return "Get Portion Guidance" }
func (t *PortionGuidanceGet) Description() string {
	return "Gives senior-friendly portion advice for a food category, adjusted for snack or dinner."
}
func (t *PortionGuidanceGet) Usage() string {
	return usage(t.Name(), "food_category:str", "food_item:str", "meal_context?:str")
}

func (t *PortionGuidanceGet) InputSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"food_category": {Type: "string"},
		"food_item":     {Type: "string"},
		"meal_context":  optional("string"),
	}, "food_category", "food_item")
}

func (t *PortionGuidanceGet) Run(_ context.Context, input map[string]any) (map[string]any, error) {
	category, err := stringArg(input, "food_category")
	if err != nil {
		return nil, err
	}
	item, err := stringArg(input, "food_item")
	if err != nil {
		return nil, err
	}
	mealContext, err := optionalString(input, "meal_context")
	if err != nil {
		return nil, err
	}
	return toMap(scoring.GetPortionGuidance(category, item, mealContext))
}
