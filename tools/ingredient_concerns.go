package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"nutriguide/scoring"
)

type IngredientConcernsCheck struct{}

func NewIngredientConcernsCheck() *IngredientConcernsCheck { return &IngredientConcernsCheck{} }

func (t *IngredientConcernsCheck) Name() string  { return "check_ingredient_concerns" }
func (t *IngredientConcernsCheck) Title() string { return "Check Ingredient Concerns" }
func (t *IngredientConcernsCheck) Description() string {
	return "Flags added sugars, sodium additives and hydrogenated or trans fats in an ingredient list."
}
func (t *IngredientConcernsCheck) Usage() string {
	return usage(t.Name(), "ingredients_list:list[str]", "product_category?:str")
}

func (t *IngredientConcernsCheck) InputSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"ingredients_list": arrayOf(&jsonschema.Schema{Type: "string"}),
		"product_category": optional("string"),
	}, "ingredients_list")
}

func (t *IngredientConcernsCheck) Run(_ context.Context, input map[string]any) (map[string]any, error) {
	ingredients, err := stringList(input, "ingredients_list", true)
	if err != nil {
		return nil, err
	}
	category, err := optionalString(input, "product_category")
	if err != nil {
		return nil, err
	}
	return toMap(scoring.CheckIngredientConcerns(ingredients, category))
}
