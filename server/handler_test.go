package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutriguide/dataset"
	"nutriguide/tools"
	"nutriguide/tools/storage"
)

type fakeAssistant struct {
	answer string
	err    error
	asked  []string
}

func (a *fakeAssistant) Ask(ctx context.Context, text string) (string, error) {
	a.asked = append(a.asked, text)
	return a.answer, a.err
}

func newTestServer(t *testing.T, assistant *fakeAssistant) http.Handler {
	t.Helper()
	registry, err := tools.NewRegistry(
		dataset.NewStatic(mustParse(t)),
		storage.NewTestPreferenceLog(nil),
	)
	require.NoError(t, err)
	dispatcher, err := tools.NewDispatcher(registry)
	require.NoError(t, err)
	return NewRouter(NewHandler(assistant, dispatcher))
}

func mustParse(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Parse(dataset.SampleDocument)
	require.NoError(t, err)
	return ds
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t, &fakeAssistant{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListTools(t *testing.T) {
	rec := do(t, newTestServer(t, &fakeAssistant{}), http.MethodGet, "/v1/tools", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []ToolInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 12)
	assert.Equal(t, "analyze_product", got[0].Name)
	assert.Equal(t, "get_user_profile(user_id:int)", got[6].Usage)
}

func TestChat(t *testing.T) {
	tests := []struct {
		name       string
		assistant  *fakeAssistant
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "answer",
			assistant:  &fakeAssistant{answer: "Brown rice has more fiber."},
			body:       `{"message":"which rice?"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"answer":"Brown rice has more fiber."}`,
		},
		{
			name:       "tool error answer is still 200",
			assistant:  &fakeAssistant{answer: "❌ Error: user_id 7 not found"},
			body:       `{"message":"profile 7"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"answer":"❌ Error: user_id 7 not found"}`,
		},
		{
			name:       "model failure",
			assistant:  &fakeAssistant{err: errors.New("ollama HTTP 500: boom")},
			body:       `{"message":"hi"}`,
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"error":"ollama HTTP 500: boom"}`,
		},
		{
			name:       "empty message",
			assistant:  &fakeAssistant{},
			body:       `{"message":"  "}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"message is required"}`,
		},
		{
			name:       "bad json",
			assistant:  &fakeAssistant{},
			body:       `{`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid request"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(t, tt.assistant), http.MethodPost, "/v1/chat", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestCallTool(t *testing.T) {
	h := newTestServer(t, &fakeAssistant{})

	t.Run("success", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/v1/tools/search_foods", `{"args":{"query":"rice"}}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var res tools.Result
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.True(t, res.OK)
		assert.Equal(t, 2.0, res.Data["count"])
	})

	t.Run("domain failure", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/v1/tools/get_user_profile", `{"args":{"user_id":7}}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.JSONEq(t, `{"ok":false,"error":"user_id 7 not found"}`, rec.Body.String())
	})

	t.Run("unknown tool", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/v1/tools/book_flight", `{"args":{}}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.JSONEq(t, `{"ok":false,"error":"Unknown tool: book_flight"}`, rec.Body.String())
	})

	t.Run("no body", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/v1/tools/compare_products", "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
