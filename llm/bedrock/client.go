package bedrock

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"nutriguide"
)

const (
	// defaultModelID is an inference profile ID, not the foundation model's ID.
	// See https://docs.aws.amazon.com/bedrock/latest/userguide/inference-profiles.html.
	defaultModelID = "us.anthropic.claude-3-7-sonnet-20250219-v1:0"

	defaultMaxTokens = 1024

	// Low temperature and top_p keep the router's JSON envelopes stable.
	defaultTemperature = 0.2
	defaultTopP        = 0.9
)

type bedrockRuntimeClient interface {
	Converse(context.Context, *bedrockruntime.ConverseInput, ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

type Options struct {
	ModelID     string
	MaxTokens   int32
	Temperature float32
	TopP        float32
}

// Client sends router conversations through the Bedrock Converse API.
// Tool use stays in the text envelope, so no ToolConfig is sent.
type Client struct {
	brc  bedrockRuntimeClient
	opts Options
}

func NewClient(brc bedrockRuntimeClient, opts Options) *Client {
	if opts.ModelID == "" {
		opts.ModelID = defaultModelID
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Temperature == 0 {
		opts.Temperature = defaultTemperature
	}
	if opts.TopP == 0 {
		opts.TopP = defaultTopP
	}
	return &Client{brc: brc, opts: opts}
}

func (c *Client) Chat(ctx context.Context, messages []nutriguide.Message) (string, error) {
	slog.Info("LLM_CLIENT: Invoked", "model", c.opts.ModelID, "messages_len", len(messages))

	var sys []types.SystemContentBlock
	var msgs []types.Message
	for _, m := range messages {
		switch m.Role {
		case nutriguide.RoleSystem:
			sys = append(sys, &types.SystemContentBlockMemberText{Value: m.Content})
		case nutriguide.RoleUser, nutriguide.RoleAssistant:
			msgs = append(msgs, types.Message{
				Role:    types.ConversationRole(m.Role),
				Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: m.Content}},
			})
		default:
			slog.Warn("LLM_CLIENT: unknown role, coercing to user", "role", m.Role)
			msgs = append(msgs, types.Message{
				Role:    types.ConversationRoleUser,
				Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: m.Content}},
			})
		}
	}

	out, err := c.brc.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId:  aws.String(c.opts.ModelID),
		System:   sys,
		Messages: msgs,
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(c.opts.MaxTokens),
			Temperature: aws.Float32(c.opts.Temperature),
			TopP:        aws.Float32(c.opts.TopP),
		},
	})
	if err != nil {
		slog.Error("LLM_CLIENT: Bedrock invoke failed", "error", err)
		return "", fmt.Errorf("bedrock converse: %w", err)
	}

	attrs := []any{"stop_reason", out.StopReason}
	if out.Metrics != nil {
		attrs = append(attrs, "latency_ms", aws.ToInt64(out.Metrics.LatencyMs))
	}
	if out.Usage != nil {
		attrs = append(attrs,
			"input_tokens", aws.ToInt32(out.Usage.InputTokens),
			"output_tokens", aws.ToInt32(out.Usage.OutputTokens),
		)
	}
	slog.Info("LLM_CLIENT: Bedrock invoke succeeded", attrs...)

	switch out.StopReason {
	case types.StopReasonMaxTokens:
		return "", fmt.Errorf("model hit MaxTokens limit; consider increasing MAX_TOKENS")
	case types.StopReasonGuardrailIntervened, types.StopReasonContentFiltered:
		return "", fmt.Errorf("model response blocked by Bedrock safety filters")
	}

	return textFromOutput(out), nil
}

// textFromOutput joins the assistant's text blocks with newlines.
func textFromOutput(out *bedrockruntime.ConverseOutput) string {
	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok || msg == nil {
		return ""
	}
	var texts []string
	for _, cb := range msg.Value.Content {
		if t, ok := cb.(*types.ContentBlockMemberText); ok && t.Value != "" {
			texts = append(texts, t.Value)
		}
	}
	return strings.Join(texts, "\n")
}
