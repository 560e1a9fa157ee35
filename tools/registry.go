package tools

import (
	"fmt"
	"sort"

	"nutriguide/dataset"
	"nutriguide/tools/storage"
)

// Registry maps tool names to implementations
type Registry map[string]Tool

// NewRegistry creates a registry holding every nutrition tool, reading foods and
// users from data and appending preferences to prefs.
func NewRegistry(data dataset.Provider, prefs storage.PreferenceLog) (*Registry, error) {
	if data == nil {
		return nil, fmt.Errorf("dataset provider is required")
	}
	if prefs == nil {
		return nil, fmt.Errorf("preference log is required")
	}

	all := []Tool{
		NewUserProfileGet(data),
		NewFoodSearch(data),
		NewDrugFoodInteractionsCheck(data),
		NewMealPlanSuggest(data),
		NewProductAnalyze(data),
		NewProductCompare(),
		NewAlternativesSuggest(data),
		NewMealImpactCalculate(data),
		NewCartReview(data),
		NewIngredientConcernsCheck(),
		NewPortionGuidanceGet(),
		NewPreferenceLog(prefs),
	}

	registry := make(Registry, len(all))
	for _, tool := range all {
		registry[tool.Name()] = tool
	}
	return &registry, nil
}

// GetTools returns all tools in the registry sorted by name
func (r *Registry) GetTools() []Tool {
	tools := make([]Tool, 0, len(*r))
	for _, tool := range *r {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// GetTool retrieves a tool by name from the registry
func (r Registry) GetTool(name string) (Tool, error) {
	tool, exists := r[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not found in registry", name)
	}
	return tool, nil
}
