package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"nutriguide/dataset"
	"nutriguide/scoring"
)

type ProductAnalyze struct{ data dataset.Provider }

func NewProductAnalyze(data dataset.Provider) *ProductAnalyze { return &ProductAnalyze{data: data} }

func (t *ProductAnalyze) Name() string  { return "analyze_product" }
func (t *ProductAnalyze) Title() string { return "Analyze Product" }
func (t *ProductAnalyze) Description() string {
	return "Rates a product as AVOID, CAUTION, RECOMMENDED or ACCEPTABLE from its nutrition panel or the foods dataset."
}
func (t *ProductAnalyze) Usage() string {
	return usage(t.Name(), "product_name:str", "nutrition_info?:object", "barcode?:str")
}

func (t *ProductAnalyze) InputSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"product_name":   {Type: "string"},
		"nutrition_info": optional("object"),
		"barcode":        optional("string"),
	}, "product_name")
}

func (t *ProductAnalyze) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	name, err := stringArg(input, "product_name")
	if err != nil {
		return nil, err
	}
	panel, err := optionalObject(input, "nutrition_info")
	if err != nil {
		return nil, err
	}
	barcode, err := optionalString(input, "barcode")
	if err != nil {
		return nil, err
	}

	ds, err := t.data.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	var info *scoring.NutritionInfo
	if panel != nil {
		n := scoring.NutritionFromMap(panel)
		info = &n
	}
	return domainResult(scoring.AnalyzeProduct(ds, name, info, barcode))
}

type ProductCompare struct{}

func NewProductCompare() *ProductCompare { return &ProductCompare{} }

func (t *ProductCompare) Name() string  { return "compare_products" }
func (t *ProductCompare) Title() string { return "Compare Products" }
func (t *ProductCompare) Description() string {
	return "Scores products by glycemic_impact (default), carb_content or overall_nutrition and picks the best."
}
func (t *ProductCompare) Usage() string {
	return usage(t.Name(), "products:list[{name,carbs,fiber,sugars,protein,glycemic_index}]", "comparison_focus?:str")
}

func (t *ProductCompare) InputSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"products":         arrayOf(&jsonschema.Schema{Type: "object"}),
		"comparison_focus": optional("string"),
	}, "products")
}

func (t *ProductCompare) Run(_ context.Context, input map[string]any) (map[string]any, error) {
	raw, err := objectList(input, "products")
	if err != nil {
		return nil, err
	}
	focus, err := optionalString(input, "comparison_focus")
	if err != nil {
		return nil, err
	}

	products := make([]scoring.ProductFacts, 0, len(raw))
	for _, p := range raw {
		products = append(products, scoring.ProductFacts{
			Name:          textField(p, "name"),
			Carbs:         dataset.Number(p["carbs"]),
			Fiber:         dataset.Number(p["fiber"]),
			Sugars:        dataset.Number(p["sugars"]),
			Protein:       dataset.Number(p["protein"]),
			GlycemicIndex: dataset.Number(p["glycemic_index"]),
		})
	}

	f := scoring.GlycemicImpact
	if focus != nil && *focus != "" {
		f = scoring.ComparisonFocus(*focus)
	}
	return toMap(scoring.CompareProducts(products, f))
}

type AlternativesSuggest struct{ data dataset.Provider }

func NewAlternativesSuggest(data dataset.Provider) *AlternativesSuggest {
	return &AlternativesSuggest{data: data}
}

func (t *AlternativesSuggest) Name() string  { return "suggest_alternatives" }
func (t *AlternativesSuggest) Title() string { return "Suggest Alternatives" }
func (t *AlternativesSuggest) Description() string {
	return "Lists up to 8 foods from the same category, highest fiber first, optionally matching preference tags."
}
func (t *AlternativesSuggest) Usage() string {
	return usage(t.Name(), "original_product:str", "category:str", "preferences?:list[str]")
}

func (t *AlternativesSuggest) InputSchema() *jsonschema.Schema {
	prefs := optional("array")
	prefs.Items = &jsonschema.Schema{Type: "string"}
	return objectSchema(map[string]*jsonschema.Schema{
		"original_product": {Type: "string"},
		"category":         {Type: "string"},
		"preferences":      prefs,
	}, "original_product", "category")
}

func (t *AlternativesSuggest) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	original, err := stringArg(input, "original_product")
	if err != nil {
		return nil, err
	}
	category, err := stringArg(input, "category")
	if err != nil {
		return nil, err
	}
	prefs, err := stringList(input, "preferences", false)
	if err != nil {
		return nil, err
	}

	ds, err := t.data.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return toMap(scoring.SuggestAlternatives(ds, original, category, prefs))
}
