package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"nutriguide/dataset"
	"nutriguide/scoring"
)

type UserProfileGet struct{ data dataset.Provider }

func NewUserProfileGet(data dataset.Provider) *UserProfileGet { return &UserProfileGet{data: data} }

func (t *UserProfileGet) Name() string  { return "get_user_profile" }
func (t *UserProfileGet) Title() string { return "Get User Profile" }
func (t *UserProfileGet) Description() string {
	return "Returns the user's chronic conditions and medications."
}
func (t *UserProfileGet) Usage() string { return usage(t.Name(), "user_id:int") }

func (t *UserProfileGet) InputSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"user_id": {Type: "integer"},
	}, "user_id")
}

func (t *UserProfileGet) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	id, err := intArg(input, "user_id")
	if err != nil {
		return nil, err
	}
	ds, err := t.data.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	user, ok := ds.FindUserByID(id)
	if !ok {
		return map[string]any{
			"ok":    false,
			"found": false,
			"error": fmt.Sprintf("user_id %d not found", id),
		}, nil
	}
	u, err := toMap(user)
	if err != nil {
		return nil, err
	}
	return map[string]any{"ok": true, "found": true, "user": u}, nil
}

type DrugFoodInteractionsCheck struct{ data dataset.Provider }

func NewDrugFoodInteractionsCheck(data dataset.Provider) *DrugFoodInteractionsCheck {
	return &DrugFoodInteractionsCheck{data: data}
}

func (t *DrugFoodInteractionsCheck) Name() string  { return "check_drug_food_interactions" }
func (t *DrugFoodInteractionsCheck) Title() string { return "Check Drug-Food Interactions" }
func (t *DrugFoodInteractionsCheck) Description() string {
	return "Checks whether a food should be avoided with any of the user's medications."
}
func (t *DrugFoodInteractionsCheck) Usage() string {
	return usage(t.Name(), "user_id:int", "food_name:str")
}

func (t *DrugFoodInteractionsCheck) InputSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"user_id":   {Type: "integer"},
		"food_name": {Type: "string"},
	}, "user_id", "food_name")
}

func (t *DrugFoodInteractionsCheck) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	id, err := intArg(input, "user_id")
	if err != nil {
		return nil, err
	}
	food, err := stringArg(input, "food_name")
	if err != nil {
		return nil, err
	}
	ds, err := t.data.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return domainResult(scoring.CheckDrugFoodInteractions(ds, id, food))
}

type MealPlanSuggest struct{ data dataset.Provider }

func NewMealPlanSuggest(data dataset.Provider) *MealPlanSuggest { return &MealPlanSuggest{data: data} }

func (t *MealPlanSuggest) Name() string  { return "suggest_meal_plan_for_user" }
func (t *MealPlanSuggest) Title() string { return "Suggest Meal Plan" }
func (t *MealPlanSuggest) Description() string {
	return "Returns the meal plan for the first of the user's chronic conditions that has one."
}
func (t *MealPlanSuggest) Usage() string { return usage(t.Name(), "user_id:int") }

func (t *MealPlanSuggest) InputSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"user_id": {Type: "integer"},
	}, "user_id")
}

func (t *MealPlanSuggest) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	id, err := intArg(input, "user_id")
	if err != nil {
		return nil, err
	}
	ds, err := t.data.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return domainResult(scoring.SuggestMealPlanForUser(ds, id))
}
