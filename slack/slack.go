package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"nutriguide"
)

// maxTextLen keeps a single section under Slack's 3000 character block limit.
const maxTextLen = 2900

// Client posts to a Slack incoming webhook.
type Client struct {
	webhookURL string
	httpClient nutriguide.HTTPClient
}

func NewClient(webhookURL string, httpClient nutriguide.HTTPClient) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

type textObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type block struct {
	Type string      `json:"type"`
	Text *textObject `json:"text,omitempty"`
}

type payload struct {
	Channel string  `json:"channel,omitempty"`
	Text    string  `json:"text"`
	Blocks  []block `json:"blocks,omitempty"`
}

func (c *Client) PostMessage(ctx context.Context, channel string, message string) error {
	return c.post(ctx, payload{Channel: channel, Text: message})
}

// PostAnswer shares a finished turn: the question as a quote, then the answer.
func (c *Client) PostAnswer(ctx context.Context, channel, question, answer string) error {
	return c.post(ctx, payload{
		Channel: channel,
		Text:    truncate(answer),
		Blocks: []block{
			{Type: "section", Text: &textObject{Type: "mrkdwn", Text: truncate("> " + strings.ReplaceAll(question, "\n", "\n> "))}},
			{Type: "divider"},
			{Type: "section", Text: &textObject{Type: "mrkdwn", Text: truncate(answer)}},
		},
	})
}

func (c *Client) post(ctx context.Context, p payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("failed to post message: %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	return nil
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxTextLen {
		return s
	}
	return string(r[:maxTextLen-1]) + "…"
}
