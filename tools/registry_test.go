package tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutriguide/tools/storage"
)

func TestNewRegistry(t *testing.T) {
	registry, _ := newTestRegistry(t)

	var names []string
	for _, tool := range registry.GetTools() {
		names = append(names, tool.Name())
	}
	assert.Equal(t, []string{
		"analyze_product",
		"calculate_meal_impact",
		"check_drug_food_interactions",
		"check_ingredient_concerns",
		"compare_products",
		"get_portion_guidance",
		"get_user_profile",
		"log_user_preference",
		"review_cart",
		"search_foods",
		"suggest_alternatives",
		"suggest_meal_plan_for_user",
	}, names)

	t.Run("missing collaborators", func(t *testing.T) {
		_, err := NewRegistry(nil, storage.NewTestPreferenceLog(nil))
		assert.Error(t, err)
		_, err = NewRegistry(sampleProvider(), nil)
		assert.Error(t, err)
	})
}

func TestRegistry_GetTool(t *testing.T) {
	registry, _ := newTestRegistry(t)

	tool, err := registry.GetTool("search_foods")
	require.NoError(t, err)
	assert.Equal(t, "search_foods", tool.Name())

	_, err = registry.GetTool("nutrition_lookup")
	assert.EqualError(t, err, `tool "nutrition_lookup" not found in registry`)
}

func TestRegistry_UsageMatchesName(t *testing.T) {
	registry, _ := newTestRegistry(t)
	for _, tool := range registry.GetTools() {
		assert.True(t, strings.HasPrefix(tool.Usage(), tool.Name()+"("), tool.Usage())
		assert.NotEmpty(t, tool.Description())
		assert.NotEmpty(t, tool.Title())
		require.NotNil(t, tool.InputSchema())
	}
}
