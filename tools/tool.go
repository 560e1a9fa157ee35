package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

// Tool is one operation the model may request by name.
type Tool interface {
	Name() string
	Title() string
	Description() string
	// Usage is the one-line signature shown to the model, e.g. "get_user_profile(user_id:int)".
	Usage() string
	InputSchema() *jsonschema.Schema
	Run(ctx context.Context, input map[string]any) (output map[string]any, err error)
}

// Call is a tool invocation parsed from model output.
type Call struct {
	Name  string         `json:"tool"`
	Input map[string]any `json:"args"`
}

// Result is the outcome of a dispatched call: either Data or Error, never both.
type Result struct {
	OK    bool           `json:"ok"`
	Data  map[string]any `json:"data,omitempty"`
	Error string         `json:"error,omitempty"`
}

func Success(data map[string]any) Result {
	if data == nil {
		data = map[string]any{}
	}
	return Result{OK: true, Data: data}
}

func Failure(msg string) Result {
	return Result{OK: false, Error: msg}
}
