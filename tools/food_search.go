package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"nutriguide/dataset"
)

const defaultSearchLimit = 10

type FoodSearch struct{ data dataset.Provider }

func NewFoodSearch(data dataset.Provider) *FoodSearch { return &FoodSearch{data: data} }

func (t *FoodSearch) Name() string  { return "search_foods" }
func (t *FoodSearch) Title() string { return "Search Foods" }
func (t *FoodSearch) Description() string {
	return "Finds foods whose name contains the query, optionally within one category."
}
func (t *FoodSearch) Usage() string {
	return usage(t.Name(), "query:str", "category?:str", "limit?:int")
}

func (t *FoodSearch) InputSchema() *jsonschema.Schema {
	minLimit := 0.0
	limit := optional("integer")
	limit.Minimum = &minLimit
	return objectSchema(map[string]*jsonschema.Schema{
		"query":    {Type: "string"},
		"category": optional("string"),
		"limit":    limit,
	}, "query")
}

func (t *FoodSearch) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	query, err := stringArg(input, "query")
	if err != nil {
		return nil, err
	}
	category, err := optionalString(input, "category")
	if err != nil {
		return nil, err
	}
	limit, err := optionalInt(input, "limit", defaultSearchLimit)
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		limit = 0
	}

	ds, err := t.data.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	cat := ""
	if category != nil {
		cat = *category
	}
	results := ds.SearchFoods(query, cat)
	count := len(results)
	if len(results) > limit {
		results = results[:limit]
	}

	return toMap(struct {
		Query    string         `json:"query"`
		Category *string        `json:"category"`
		Count    int            `json:"count"`
		Results  []dataset.Food `json:"results"`
	}{query, category, count, results})
}
