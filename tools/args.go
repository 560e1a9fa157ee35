package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"nutriguide/scoring"
)

// objectSchema builds a closed object schema: unknown argument names are rejected.
func objectSchema(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
}

// optional accepts the given type or an explicit null.
func optional(typ string) *jsonschema.Schema {
	return &jsonschema.Schema{Types: []string{typ, "null"}}
}

func arrayOf(items *jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "array", Items: items}
}

func stringArg(input map[string]any, key string) (string, error) {
	v, ok := input[key]
	if !ok || v == nil {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string", key)
	}
	return s, nil
}

func optionalString(input map[string]any, key string) (*string, error) {
	v, ok := input[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("argument %q must be a string", key)
	}
	return &s, nil
}

func intArg(input map[string]any, key string) (int, error) {
	v, ok := input[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing required argument %q", key)
	}
	return toInt(key, v)
}

func optionalInt(input map[string]any, key string, def int) (int, error) {
	v, ok := input[key]
	if !ok || v == nil {
		return def, nil
	}
	return toInt(key, v)
}

func toInt(key string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || n < float64(math.MinInt) || n >= -float64(math.MinInt) {
			return 0, fmt.Errorf("argument %q must be an integer", key)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("argument %q must be an integer", key)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("argument %q must be an integer", key)
	}
}

func optionalBool(input map[string]any, key string, def bool) (bool, error) {
	v, ok := input[key]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("argument %q must be a boolean", key)
	}
	return b, nil
}

func stringList(input map[string]any, key string, required bool) ([]string, error) {
	v, ok := input[key]
	if !ok || v == nil {
		if required {
			return nil, fmt.Errorf("missing required argument %q", key)
		}
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			return ss, nil
		}
		return nil, fmt.Errorf("argument %q must be an array of strings", key)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("argument %q must be an array of strings", key)
		}
		out = append(out, s)
	}
	return out, nil
}

func objectList(input map[string]any, key string) ([]map[string]any, error) {
	v, ok := input[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("missing required argument %q", key)
	}
	raw, ok := v.([]any)
	if !ok {
		if ms, ok := v.([]map[string]any); ok {
			return ms, nil
		}
		return nil, fmt.Errorf("argument %q must be an array of objects", key)
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("argument %q must be an array of objects", key)
		}
		out = append(out, m)
	}
	return out, nil
}

func optionalObject(input map[string]any, key string) (map[string]any, error) {
	v, ok := input[key]
	if !ok || v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("argument %q must be an object", key)
	}
	return m, nil
}

// textField reads a string field from a nested argument object; other types read as "".
func textField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// toMap marshals v and decodes it back so every tool output has the same shape.
func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode tool output: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode tool output: %w", err)
	}
	return m, nil
}

// domainResult turns a scoring outcome into a tool payload. Lookups that found
// nothing become {"ok": false, "error": ...} rather than a Go error.
func domainResult(v any, err error) (map[string]any, error) {
	if err != nil {
		var nf *scoring.NotFoundError
		if errors.As(err, &nf) {
			return map[string]any{"ok": false, "error": nf.Error()}, nil
		}
		return nil, err
	}
	return toMap(v)
}

func usage(name string, params ...string) string {
	return name + "(" + strings.Join(params, ", ") + ")"
}
