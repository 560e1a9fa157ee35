package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

// Dispatcher runs registered tools by name and folds every outcome into a Result.
type Dispatcher struct {
	registry *Registry
	schemas  map[string]*jsonschema.Resolved
}

// NewDispatcher resolves every tool's input schema up front so a broken schema
// fails at startup rather than on the first call.
func NewDispatcher(registry *Registry) (*Dispatcher, error) {
	schemas := make(map[string]*jsonschema.Resolved, len(*registry))
	for name, tool := range *registry {
		resolved, err := tool.InputSchema().Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("resolve input schema for %q: %w", name, err)
		}
		schemas[name] = resolved
	}
	return &Dispatcher{registry: registry, schemas: schemas}, nil
}

// Tools lists the dispatchable tools sorted by name.
func (d *Dispatcher) Tools() []Tool {
	return d.registry.GetTools()
}

// Dispatch validates args against the tool's schema, runs it and normalizes the
// output. A payload reporting ok=false becomes a failure carrying its error.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) Result {
	tool, err := d.registry.GetTool(name)
	if err != nil {
		slog.Warn("DISPATCH: Unknown tool requested", "name", name)
		return Failure("Unknown tool: " + name)
	}
	if args == nil {
		args = map[string]any{}
	}

	if err := d.schemas[name].Validate(args); err != nil {
		slog.Warn("DISPATCH: Arguments rejected", "name", name, "error", err)
		return Failure(fmt.Sprintf("invalid arguments for %s: %v", name, err))
	}

	out, err := tool.Run(ctx, args)
	if err != nil {
		slog.Error("DISPATCH: Tool failed", "name", name, "error", err)
		return Failure(err.Error())
	}

	if ok, present := out["ok"].(bool); present && !ok {
		msg, _ := out["error"].(string)
		if msg == "" {
			msg = "Unknown error"
		}
		slog.Info("DISPATCH: Tool reported failure", "name", name, "error", msg)
		return Failure(msg)
	}

	slog.Info("DISPATCH: Tool succeeded", "name", name)
	return Success(out)
}
