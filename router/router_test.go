package router

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"nutriguide"
	"nutriguide/dataset"
	"nutriguide/tools"
	"nutriguide/tools/storage"
)

// scriptedModel replies with the next scripted answer and records every conversation it saw.
type scriptedModel struct {
	replies []string
	errs    []error
	calls   [][]nutriguide.Message
}

func (m *scriptedModel) Chat(ctx context.Context, messages []nutriguide.Message) (string, error) {
	i := len(m.calls)
	m.calls = append(m.calls, append([]nutriguide.Message(nil), messages...))
	if i < len(m.errs) && m.errs[i] != nil {
		return "", m.errs[i]
	}
	if i >= len(m.replies) {
		return "", errors.New("no scripted reply")
	}
	return m.replies[i], nil
}

type fakeDispatcher struct {
	result tools.Result
	calls  []tools.Call
}

func (d *fakeDispatcher) Tools() []tools.Tool { return nil }

func (d *fakeDispatcher) Dispatch(ctx context.Context, name string, args map[string]any) tools.Result {
	d.calls = append(d.calls, tools.Call{Name: name, Input: args})
	return d.result
}

type recordingLogger struct{ turns []nutriguide.TurnLog }

func (l *recordingLogger) LogTurn(turn nutriguide.TurnLog) error {
	l.turns = append(l.turns, turn)
	return nil
}

func realDispatcher(t *testing.T) *tools.Dispatcher {
	t.Helper()
	registry, err := tools.NewRegistry(
		dataset.NewLoadingProvider(storage.NewTestDatasetState(dataset.SampleDocument)),
		storage.NewTestPreferenceLog(nil),
	)
	require.NoError(t, err)
	d, err := tools.NewDispatcher(registry)
	require.NoError(t, err)
	return d
}

func TestRouter_Ask(t *testing.T) {
	tests := []struct {
		name           string
		replies        []string
		result         tools.Result
		wantAnswer     string
		wantModelCalls int
		wantDispatches int
	}{
		{
			name:           "prose reply is the final answer",
			replies:        []string{"Oatmeal is a good breakfast."},
			wantAnswer:     "Oatmeal is a good breakfast.",
			wantModelCalls: 1,
		},
		{
			name:           "json with extra prose is the final answer",
			replies:        []string{`Sure: {"tool":"search_foods","args":{"query":"rice"}}`},
			wantAnswer:     `Sure: {"tool":"search_foods","args":{"query":"rice"}}`,
			wantModelCalls: 1,
		},
		{
			name:           "no_tool envelope returns the answer",
			replies:        []string{`{"tool":"no_tool","args":{"answer":"Drink water."}}`},
			wantAnswer:     "Drink water.",
			wantModelCalls: 1,
		},
		{
			name:           "tool failure stops after one model call",
			replies:        []string{`{"tool":"get_user_profile","args":{"user_id":7}}`},
			result:         tools.Failure("user_id 7 not found"),
			wantAnswer:     "❌ Error: user_id 7 not found",
			wantModelCalls: 1,
			wantDispatches: 1,
		},
		{
			name:           "tool success goes back to the model",
			replies:        []string{` {"tool":"search_foods","args":{"query":"rice"}} `, "Brown rice is the better pick."},
			result:         tools.Success(map[string]any{"count": 2.0}),
			wantAnswer:     "Brown rice is the better pick.",
			wantModelCalls: 2,
			wantDispatches: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &scriptedModel{replies: tt.replies}
			dispatcher := &fakeDispatcher{result: tt.result}
			r := New(model, dispatcher, Config{ToolSchema: "1) search_foods(query:str)"})

			answer, err := r.Ask(context.Background(), "what should I eat?")
			require.NoError(t, err)
			assert.Equal(t, tt.wantAnswer, answer)
			assert.Len(t, model.calls, tt.wantModelCalls)
			assert.Len(t, dispatcher.calls, tt.wantDispatches)
		})
	}
}

func TestRouter_Ask_Conversation(t *testing.T) {
	model := &scriptedModel{replies: []string{
		`{"tool":"search_foods","args":{"query":"rice"}}`,
		"done",
	}}
	dispatcher := &fakeDispatcher{result: tools.Success(map[string]any{"ok": true, "count": 2.0})}
	r := New(model, dispatcher, Config{SystemPrompt: "SYSTEM"})

	_, err := r.Ask(context.Background(), "find rice")
	require.NoError(t, err)

	require.Len(t, model.calls, 2)
	assert.Equal(t, []nutriguide.Message{
		{Role: "system", Content: "SYSTEM"},
		{Role: "user", Content: "find rice"},
	}, model.calls[0])

	second := model.calls[1]
	require.Len(t, second, 4)
	assert.Equal(t, nutriguide.Message{Role: "assistant", Content: `{"tool":"search_foods","args":{"query":"rice"}}`}, second[2])
	assert.Equal(t, "user", second[3].Role)
	assert.Equal(t, "Tool result JSON:\n{\"count\":2,\"ok\":true}\nNow answer the user in natural language.", second[3].Content)

	require.Len(t, dispatcher.calls, 1)
	assert.Equal(t, tools.Call{Name: "search_foods", Input: map[string]any{"query": "rice"}}, dispatcher.calls[0])
}

func TestRouter_Ask_UnknownUserRoundTrip(t *testing.T) {
	model := &scriptedModel{replies: []string{`{"tool":"get_user_profile","args":{"user_id":7}}`}}
	logger := &recordingLogger{}
	d := realDispatcher(t)
	r := New(model, d, NewConfig(d.Tools()), WithTurnLogger(logger))

	answer, err := r.Ask(context.Background(), "show profile 7")
	require.NoError(t, err)
	assert.Equal(t, "❌ Error: user_id 7 not found", answer)
	assert.Len(t, model.calls, 1)

	require.Len(t, logger.turns, 1)
	turn := logger.turns[0]
	require.NotNil(t, turn.ToolCall)
	assert.Equal(t, "get_user_profile", turn.ToolCall.Name)
	assert.Equal(t, "user_id 7 not found", turn.ToolCall.Error)
	assert.Equal(t, answer, turn.FinalAnswer)
}

func TestRouter_Ask_NonObjectArgs(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		wantAnswer string
	}{
		{
			name:       "known tool",
			reply:      `{"tool":"get_user_profile","args":[7]}`,
			wantAnswer: "❌ Error: invalid arguments for get_user_profile: args must be an object",
		},
		{
			name:       "unknown tool",
			reply:      `{"tool":"pantry_get","args":"flour"}`,
			wantAnswer: "❌ Error: Unknown tool: pantry_get",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &scriptedModel{replies: []string{tt.reply}}
			logger := &recordingLogger{}
			d := realDispatcher(t)
			r := New(model, d, NewConfig(d.Tools()), WithTurnLogger(logger))

			answer, err := r.Ask(context.Background(), "show profile 7")
			require.NoError(t, err)
			assert.Equal(t, tt.wantAnswer, answer)
			assert.Len(t, model.calls, 1)

			require.Len(t, logger.turns, 1)
			require.NotNil(t, logger.turns[0].ToolCall)
			assert.Equal(t, strings.TrimPrefix(tt.wantAnswer, ErrorPrefix), logger.turns[0].ToolCall.Error)
		})
	}
}

func TestRouter_Ask_ToolResultFromDataset(t *testing.T) {
	model := &scriptedModel{replies: []string{
		`{"tool":"check_drug_food_interactions","args":{"user_id":1,"food_name":"Banana"}}`,
		"Avoid bananas with Lisinopril.",
	}}
	r := New(model, realDispatcher(t), Config{})

	answer, err := r.Ask(context.Background(), "can I eat a banana?")
	require.NoError(t, err)
	assert.Equal(t, "Avoid bananas with Lisinopril.", answer)

	require.Len(t, model.calls, 2)
	feedback := model.calls[1][3].Content
	require.True(t, strings.HasPrefix(feedback, "Tool result JSON:\n"))
	payload := strings.TrimSuffix(strings.TrimPrefix(feedback, "Tool result JSON:\n"), "\nNow answer the user in natural language.")
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &result))
	assert.Equal(t, true, result["has_interaction"])
}

func TestRouter_Ask_ModelErrors(t *testing.T) {
	t.Run("first call", func(t *testing.T) {
		model := &scriptedModel{errs: []error{errors.New("ollama: 500 Internal Server Error")}}
		dispatcher := &fakeDispatcher{}
		logger := &recordingLogger{}
		r := New(model, dispatcher, Config{}, WithTurnLogger(logger))

		_, err := r.Ask(context.Background(), "hi")
		assert.ErrorContains(t, err, "first model call")
		assert.Empty(t, dispatcher.calls)
		require.Len(t, logger.turns, 1)
		assert.Contains(t, logger.turns[0].Error, "500")
	})

	t.Run("second call", func(t *testing.T) {
		model := &scriptedModel{
			replies: []string{`{"tool":"search_foods","args":{"query":"rice"}}`},
			errs:    []error{nil, errors.New("connection reset")},
		}
		r := New(model, &fakeDispatcher{result: tools.Success(nil)}, Config{})

		_, err := r.Ask(context.Background(), "hi")
		assert.ErrorContains(t, err, "second model call")
	})

	t.Run("next turn still works", func(t *testing.T) {
		model := &scriptedModel{
			replies: []string{"", "fine"},
			errs:    []error{errors.New("timeout")},
		}
		r := New(model, &fakeDispatcher{}, Config{})

		_, err := r.Ask(context.Background(), "one")
		require.Error(t, err)
		answer, err := r.Ask(context.Background(), "two")
		require.NoError(t, err)
		assert.Equal(t, "fine", answer)
	})
}

func TestRouter_Telemetry(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	spans := tracetest.NewSpanRecorder()
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))

	model := &scriptedModel{replies: []string{`{"tool":"search_foods","args":{"query":"rice"}}`, "ok"}}
	r := New(model, &fakeDispatcher{result: tools.Success(nil)}, Config{},
		WithMeter(meterProvider.Meter("test")),
		WithTracer(tracerProvider.Tracer("test")),
	)

	_, err := r.Ask(context.Background(), "rice?")
	require.NoError(t, err)

	var names []string
	for _, s := range spans.Ended() {
		names = append(names, s.Name())
	}
	assert.ElementsMatch(t, []string{"Router.Ask", "Router.Dispatch"}, names)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					sums[m.Name] += dp.Value
				}
			}
		}
	}
	assert.Equal(t, int64(1), sums["router_turns_total"])
	assert.Equal(t, int64(2), sums["router_model_calls_total"])
	assert.Equal(t, int64(1), sums["router_tool_dispatch_total"])
}
