package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"nutriguide"
)

type options struct {
	Temperature   float64 `json:"temperature,omitempty"`
	TopP          float64 `json:"top_p,omitempty"`
	RepeatPenalty float64 `json:"repeat_penalty,omitempty"`
	NumCtx        int     `json:"num_ctx,omitempty"`
	NumPredict    int     `json:"num_predict,omitempty"`
}

// Client talks to Ollama's /api/chat endpoint without streaming.
type Client struct {
	endpoint   string
	model      string
	httpClient nutriguide.HTTPClient
	options    options
}

type ClientOpts struct {
	BaseEndpoint string
	ModelID      string
	HTTPClient   nutriguide.HTTPClient
	MaxTokens    int32
	Temperature  float32
	TopP         float32
}

func NewClient(opts ClientOpts) (*Client, error) {
	if strings.TrimSpace(opts.ModelID) == "" {
		return nil, fmt.Errorf("model id is required")
	}
	if strings.TrimSpace(opts.BaseEndpoint) == "" {
		return nil, fmt.Errorf("base endpoint is required")
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	o := options{
		Temperature:   0.2,
		TopP:          0.9,
		RepeatPenalty: 1.05,
		NumCtx:        8192,
	}
	if opts.Temperature > 0 {
		o.Temperature = float64(opts.Temperature)
	}
	if opts.TopP > 0 {
		o.TopP = float64(opts.TopP)
	}
	if opts.MaxTokens > 0 {
		o.NumPredict = int(opts.MaxTokens)
	}

	return &Client{
		model:      opts.ModelID,
		httpClient: opts.HTTPClient,
		endpoint:   strings.TrimRight(opts.BaseEndpoint, "/") + "/api/chat",
		options:    o,
	}, nil
}

type wireResponse struct {
	Message nutriguide.Message `json:"message"`
	// other metadata omitted but available
}

type wireRequest struct {
	Model    string               `json:"model"`
	Messages []nutriguide.Message `json:"messages"`
	Stream   bool                 `json:"stream"`
	Options  options              `json:"options,omitempty"`
}

// Chat sends the conversation and returns the assistant's content verbatim.
// Any non-200 status is an error carrying the response body.
func (c *Client) Chat(ctx context.Context, messages []nutriguide.Message) (string, error) {
	slog.Info("LLM_CLIENT: Invoked", "model", c.model, "messages_len", len(messages))

	reqBytes, err := json.Marshal(wireRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
		Options:  c.options,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(reqBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var wr wireResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	return wr.Message.Content, nil
}
