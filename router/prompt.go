package router

import (
	"fmt"
	"strings"

	"nutriguide/tools"
)

// Config holds everything the router tells the model up front. The model
// endpoint and model name belong to the ModelClient passed to New (see
// ollama.ClientOpts and bedrock.Options).
type Config struct {
	// SystemPrompt is the full instruction text. When empty it is built from ToolSchema.
	SystemPrompt string
	// ToolSchema is the numbered tool list documented to the model.
	ToolSchema string
}

// NewConfig documents ts in the default system prompt.
func NewConfig(ts []tools.Tool) Config {
	schema := ToolSchema(ts)
	return Config{SystemPrompt: SystemPrompt(schema), ToolSchema: schema}
}

// ToolSchema lists each tool's usage line, numbered from 1.
func ToolSchema(ts []tools.Tool) string {
	var b strings.Builder
	for i, t := range ts {
		fmt.Fprintf(&b, "%d) %s\n", i+1, t.Usage())
	}
	return strings.TrimRight(b.String(), "\n")
}

// SystemPrompt renders the router instructions around the given tool list.
func SystemPrompt(toolSchema string) string {
	return fmt.Sprintf(systemPromptTemplate, toolSchema)
}

const systemPromptTemplate = `You are a tool router for NutriGuide, a nutrition assistant for seniors.
You must output ONLY ONE JSON object. No extra text.

If you need a tool, output:
{"tool":"TOOL_NAME","args":{...}}

If no tool needed, output:
{"tool":"no_tool","args":{"answer":"...final answer to user..."}}

Available tools:
%s

Rules:
- Always output valid JSON.
- Use the argument names exactly as listed; "?" marks an optional argument.
- Never explain tools.
- Never output code blocks.`
