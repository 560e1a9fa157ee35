package mock

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"nutriguide"
)

const toolResultPrefix = "Tool result JSON:\n"

var (
	userIDPattern     = regexp.MustCompile(`(?i)\buser\s*(?:id\s*)?#?(\d+)`)
	eatPattern        = regexp.MustCompile(`(?i)\beat\s+(?:an?\s+|some\s+)?([a-z][a-z ]*?)\s*[?.!]*$`)
	searchPattern     = regexp.MustCompile(`(?i)\b(?:search|find)(?:\s+for)?\s+([a-z][a-z ]*?)\s*[?.!]*$`)
	analyzePattern    = regexp.MustCompile(`(?i)\b(?:analy[sz]e|is)\s+([a-z][a-z ]*?)\s+(?:healthy|ok|okay|good)\b`)
	ingredientPattern = regexp.MustCompile(`(?i)\bingredients?\s*:\s*(.+)$`)
	preferencePattern = regexp.MustCompile(`(?i)\bi\s+(like|dislike|avoid|am allergic to)\s+([a-z][a-z ]*?)\s*[?.!]*$`)
)

// Client is a deterministic stand-in for a model. It routes on keywords in the
// latest user turn and, once a tool result is present, summarizes it. It only
// exists so the router can be run and tested offline.
type Client struct{}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) Chat(ctx context.Context, messages []nutriguide.Message) (string, error) {
	slog.Info("LLM_CLIENT: Invoked", "model", "mock", "messages_len", len(messages))

	last := lastUserContent(messages)
	if strings.HasPrefix(last, toolResultPrefix) {
		return summarize(last), nil
	}

	call := route(last)
	b, err := json.Marshal(call)
	if err != nil {
		return "", err
	}
	slog.Info("LLM_CLIENT: Routed", "tool", call["tool"])
	return string(b), nil
}

func lastUserContent(messages []nutriguide.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == nutriguide.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

func envelope(tool string, args map[string]any) map[string]any {
	return map[string]any{"tool": tool, "args": args}
}

func route(text string) map[string]any {
	lower := strings.ToLower(strings.TrimSpace(text))

	if m := ingredientPattern.FindStringSubmatch(text); m != nil {
		var list []string
		for _, part := range strings.Split(m[1], ",") {
			if p := strings.TrimSpace(part); p != "" {
				list = append(list, p)
			}
		}
		return envelope("check_ingredient_concerns", map[string]any{"ingredients_list": list})
	}

	if m := preferencePattern.FindStringSubmatch(text); m != nil {
		kind := strings.ToLower(m[1])
		if kind == "am allergic to" {
			kind = "allergy"
		}
		return envelope("log_user_preference", map[string]any{"item": strings.TrimSpace(m[2]), "preference_type": kind})
	}

	if m := userIDPattern.FindStringSubmatch(text); m != nil {
		id, _ := strconv.Atoi(m[1])
		switch {
		case eatPattern.MatchString(text):
			food := eatPattern.FindStringSubmatch(text)[1]
			return envelope("check_drug_food_interactions", map[string]any{"user_id": id, "food_name": strings.TrimSpace(food)})
		case strings.Contains(lower, "meal plan"):
			return envelope("suggest_meal_plan_for_user", map[string]any{"user_id": id})
		default:
			return envelope("get_user_profile", map[string]any{"user_id": id})
		}
	}

	if m := analyzePattern.FindStringSubmatch(text); m != nil {
		return envelope("analyze_product", map[string]any{"product_name": strings.TrimSpace(m[1])})
	}

	if m := searchPattern.FindStringSubmatch(text); m != nil {
		return envelope("search_foods", map[string]any{"query": strings.TrimSpace(m[1])})
	}

	return envelope("no_tool", map[string]any{
		"answer": "I can look up foods, products, meal plans and medication interactions. What would you like to check?",
	})
}

// summarize turns a tool result turn into a short plain-language answer.
func summarize(turn string) string {
	payload := strings.TrimPrefix(turn, toolResultPrefix)
	if i := strings.LastIndex(payload, "\n"); i >= 0 {
		payload = payload[:i]
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return "I found some information but could not read it."
	}

	switch {
	case result["recommendation"] != nil:
		return "Recommendation: " + str(result["recommendation"]) + " (" + str(result["reason"]) + ")."
	case result["has_interaction"] == true:
		return "Be careful: this food interacts with one of your medications."
	case result["has_interaction"] == false:
		return "No known interactions with your medications."
	case result["has_concerns"] != nil:
		if result["has_concerns"] == true {
			return "Some ingredients are worth watching."
		}
		return "No ingredient concerns found."
	case result["count"] != nil:
		return "Found " + str(result["count"]) + " matching foods."
	case result["saved_to"] != nil:
		return "Got it, I saved that preference."
	case result["meal_plan"] != nil:
		return "Here is a meal plan for " + str(result["matched_condition"]) + "."
	case result["user"] != nil:
		return "Here is the profile you asked for."
	default:
		return "Here is what I found."
	}
}

func str(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}
