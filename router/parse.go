package router

import (
	"encoding/json"
	"errors"
	"strings"

	"nutriguide/tools"
)

// NoTool is the tool name the model uses to answer directly.
const NoTool = "no_tool"

// ErrArgsNotObject marks an envelope whose "args" is present but is not an object.
var ErrArgsNotObject = errors.New("args must be an object")

// ParseToolCall reports whether reply is exactly one tool-call envelope:
// a JSON object with a string "tool" and an "args" key. Anything else is a
// final answer and is returned untouched by the caller. An envelope whose args
// is neither an object nor null is still a tool call; it comes back with
// ErrArgsNotObject so the call can fail.
func ParseToolCall(reply string) (tools.Call, bool, error) {
	text := strings.TrimSpace(reply)
	if !strings.HasPrefix(text, "{") || !strings.HasSuffix(text, "}") {
		return tools.Call{}, false, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return tools.Call{}, false, nil
	}
	rawName, hasTool := envelope["tool"]
	rawArgs, hasArgs := envelope["args"]
	if !hasTool || !hasArgs || string(rawName) == "null" {
		return tools.Call{}, false, nil
	}

	var call tools.Call
	if err := json.Unmarshal(rawName, &call.Name); err != nil {
		return tools.Call{}, false, nil
	}
	if err := json.Unmarshal(rawArgs, &call.Input); err != nil {
		return tools.Call{Name: call.Name}, true, ErrArgsNotObject
	}
	if call.Input == nil {
		call.Input = map[string]any{}
	}
	return call, true, nil
}

// directAnswer extracts args.answer from a no_tool envelope.
func directAnswer(call tools.Call) (string, bool) {
	if call.Name != NoTool {
		return "", false
	}
	answer, ok := call.Input["answer"].(string)
	return answer, ok
}
