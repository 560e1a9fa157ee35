package nutriguide

import (
	"context"
	"net/http"

	"nutriguide/tools"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type SlackClient interface {
	PostMessage(ctx context.Context, channel string, message string) error
	PostAnswer(ctx context.Context, channel, question, answer string) error
}

// ToolDispatcher runs a named tool and reports the outcome as a tools.Result.
type ToolDispatcher interface {
	Tools() []tools.Tool
	Dispatch(ctx context.Context, name string, args map[string]any) tools.Result
}

// Message is one turn of a model conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ModelClient sends a whole conversation and returns the assistant's reply text.
type ModelClient interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// Assistant answers one user turn.
type Assistant interface {
	Ask(ctx context.Context, text string) (string, error)
}
