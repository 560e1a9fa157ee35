package router

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"nutriguide"
	"nutriguide/tools"
)

// ErrorPrefix starts the answer returned when a requested tool fails.
const ErrorPrefix = "❌ Error: "

// Router answers a user turn with at most two model calls and one tool dispatch.
type Router struct {
	model      nutriguide.ModelClient
	dispatcher nutriguide.ToolDispatcher
	cfg        Config
	logger     nutriguide.TurnLogger
	tracer     trace.Tracer

	turns         metric.Int64Counter
	modelCalls    metric.Int64Counter
	dispatches    metric.Int64Counter
	modelDuration metric.Float64Histogram
}

type Option func(*Router)

// WithTurnLogger records every turn to l.
func WithTurnLogger(l nutriguide.TurnLogger) Option {
	return func(r *Router) { r.logger = l }
}

// WithTracer overrides the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(r *Router) { r.tracer = t }
}

// WithMeter overrides the global meter used for router metrics.
func WithMeter(m metric.Meter) Option {
	return func(r *Router) { r.initMetrics(m) }
}

// New builds a router. Without options it uses the global OpenTelemetry
// providers and discards turn logs.
func New(model nutriguide.ModelClient, dispatcher nutriguide.ToolDispatcher, cfg Config, opts ...Option) *Router {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = SystemPrompt(cfg.ToolSchema)
	}
	r := &Router{
		model:      model,
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     nutriguide.NewNoOpTurnLogger(),
		tracer:     otel.Tracer(nutriguide.TracerNameRouter),
	}
	r.initMetrics(otel.Meter(nutriguide.MeterNameRouter))
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) initMetrics(m metric.Meter) {
	r.turns, _ = m.Int64Counter("router_turns_total",
		metric.WithDescription("Total number of user turns by outcome"))
	r.modelCalls, _ = m.Int64Counter("router_model_calls_total",
		metric.WithDescription("Total number of model round-trips"))
	r.dispatches, _ = m.Int64Counter("router_tool_dispatch_total",
		metric.WithDescription("Total number of tool dispatches by tool and outcome"))
	r.modelDuration, _ = m.Float64Histogram("router_model_latency_seconds",
		metric.WithDescription("Time taken to receive a reply from the model in seconds"))
}

// Ask runs one turn. A model failure is returned as an error; a failed tool
// call is an answer starting with ErrorPrefix.
func (r *Router) Ask(ctx context.Context, text string) (string, error) {
	ctx, span := r.tracer.Start(ctx, "Router.Ask")
	defer span.End()

	turn := nutriguide.NewTurnLog(text)
	span.SetAttributes(attribute.String("turn_id", turn.TurnID))
	slog.Info("ROUTER: Starting turn", "turn_id", turn.TurnID, "input_length", len(text))

	answer, outcome, err := r.ask(ctx, text, &turn)
	if err != nil {
		turn.Error = err.Error()
		span.SetStatus(codes.Error, "turn failed")
		span.RecordError(err)
	} else {
		turn.FinalAnswer = answer
	}
	r.turns.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	r.logTurn(turn)

	slog.Info("ROUTER: Turn finished", "turn_id", turn.TurnID, "outcome", outcome)
	return answer, err
}

func (r *Router) ask(ctx context.Context, text string, turn *nutriguide.TurnLog) (string, string, error) {
	messages := []nutriguide.Message{
		{Role: nutriguide.RoleSystem, Content: r.cfg.SystemPrompt},
		{Role: nutriguide.RoleUser, Content: text},
	}

	first, err := r.chat(ctx, messages)
	if err != nil {
		return "", "model_error", fmt.Errorf("first model call: %w", err)
	}
	turn.FirstReply = first

	call, ok, argsErr := ParseToolCall(first)
	if !ok {
		slog.Info("ROUTER: Reply is a direct answer")
		return first, "direct", nil
	}
	if argsErr != nil {
		msg := r.rejectCall(ctx, call.Name, argsErr)
		turn.ToolCall = &nutriguide.ToolCallLog{Name: call.Name, Error: msg}
		return ErrorPrefix + msg, "tool_failed", nil
	}
	if answer, ok := directAnswer(call); ok {
		slog.Info("ROUTER: Model chose no_tool")
		return answer, "direct", nil
	}

	turn.ToolCall = &nutriguide.ToolCallLog{Name: call.Name, Input: call.Input}
	result := r.dispatch(ctx, call.Name, call.Input)
	if !result.OK {
		turn.ToolCall.Error = result.Error
		return ErrorPrefix + result.Error, "tool_failed", nil
	}
	turn.ToolCall.Output = result.Data

	payload, err := json.Marshal(result.Data)
	if err != nil {
		return "", "tool_failed", fmt.Errorf("encode tool result: %w", err)
	}

	messages = append(messages,
		nutriguide.Message{Role: nutriguide.RoleAssistant, Content: first},
		nutriguide.Message{
			Role:    nutriguide.RoleUser,
			Content: "Tool result JSON:\n" + string(payload) + "\nNow answer the user in natural language.",
		},
	)

	second, err := r.chat(ctx, messages)
	if err != nil {
		return "", "model_error", fmt.Errorf("second model call: %w", err)
	}
	turn.SecondReply = second
	return second, "tool_answered", nil
}

func (r *Router) chat(ctx context.Context, messages []nutriguide.Message) (string, error) {
	start := time.Now()
	reply, err := r.model.Chat(ctx, messages)
	elapsed := time.Since(start)

	r.modelCalls.Add(ctx, 1)
	r.modelDuration.Record(ctx, elapsed.Seconds())
	slog.Info("ROUTER: Model replied",
		"messages_count", len(messages),
		"reply_length", len(reply),
		"latency_ms", elapsed.Milliseconds(),
		"error", err,
	)
	return reply, err
}

func (r *Router) dispatch(ctx context.Context, name string, args map[string]any) tools.Result {
	ctx, span := r.tracer.Start(ctx, "Router.Dispatch", trace.WithAttributes(attribute.String("tool_name", name)))
	defer span.End()

	result := r.dispatcher.Dispatch(ctx, name, args)

	outcome := "ok"
	if !result.OK {
		outcome = "failed"
		span.SetStatus(codes.Error, result.Error)
	}
	r.dispatches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tool", name),
		attribute.String("outcome", outcome),
	))
	return result
}

// rejectCall fails a call whose arguments could not be decoded, reporting an
// unknown tool first the same way the dispatcher does.
func (r *Router) rejectCall(ctx context.Context, name string, err error) string {
	msg := "Unknown tool: " + name
	for _, t := range r.dispatcher.Tools() {
		if t.Name() == name {
			msg = fmt.Sprintf("invalid arguments for %s: %v", name, err)
			break
		}
	}
	slog.Warn("ROUTER: Rejected tool call", "name", name, "error", msg)
	r.dispatches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tool", name),
		attribute.String("outcome", "failed"),
	))
	return msg
}

func (r *Router) logTurn(turn nutriguide.TurnLog) {
	if err := r.logger.LogTurn(turn); err != nil {
		slog.Error("ROUTER: Failed to log turn", "error", err, "turn_id", turn.TurnID)
	}
}
