package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"nutriguide/dataset"
	"nutriguide/scoring"
)

type CartReview struct{ data dataset.Provider }

func NewCartReview(data dataset.Provider) *CartReview { return &CartReview{data: data} }

func (t *CartReview) Name() string  { return "review_cart" }
func (t *CartReview) Title() string { return "Review Cart" }
func (t *CartReview) Description() string {
	return "Totals a shopping cart's nutrients, flags heavy items and warns about sugar, sodium and (for meal planning) protein."
}
func (t *CartReview) Usage() string {
	return usage(t.Name(), "cart_items:list[{name,quantity}]", "meal_planning?:bool")
}

func (t *CartReview) InputSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"cart_items":    arrayOf(&jsonschema.Schema{Type: "object"}),
		"meal_planning": optional("boolean"),
	}, "cart_items")
}

func (t *CartReview) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	raw, err := objectList(input, "cart_items")
	if err != nil {
		return nil, err
	}
	planning, err := optionalBool(input, "meal_planning", false)
	if err != nil {
		return nil, err
	}
	ds, err := t.data.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]scoring.CartItem, 0, len(raw))
	for _, it := range raw {
		items = append(items, scoring.CartItem{
			Name:     textField(it, "name"),
			Quantity: dataset.Number(it["quantity"]),
		})
	}
	return toMap(scoring.ReviewCart(ds, items, planning))
}
