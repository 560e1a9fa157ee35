package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"nutriguide"
)

type Handler struct {
	assistant  nutriguide.Assistant
	dispatcher nutriguide.ToolDispatcher
}

func NewHandler(assistant nutriguide.Assistant, dispatcher nutriguide.ToolDispatcher) *Handler {
	return &Handler{assistant: assistant, dispatcher: dispatcher}
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}

type ToolRequest struct {
	Args map[string]any `json:"args"`
}

type ToolInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter mounts the API on a chi router with request logging and panic recovery.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Get("/healthz", h.Health)
	r.Route("/v1", func(r chi.Router) {
		RegisterRoutes(r, h)
	})
	return r
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/tools", h.ListTools)
	r.Post("/tools/{name}", h.CallTool)
	r.Post("/chat", h.Chat)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	ts := h.dispatcher.Tools()
	out := make([]ToolInfo, 0, len(ts))
	for _, t := range ts {
		out = append(out, ToolInfo{Name: t.Name(), Title: t.Title(), Description: t.Description(), Usage: t.Usage()})
	}
	writeJSON(w, http.StatusOK, out)
}

// Chat runs one router turn. Model failures map to 502 so clients can retry.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}

	answer, err := h.assistant.Ask(r.Context(), req.Message)
	if err != nil {
		slog.Error("SERVER: Turn failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ChatResponse{Answer: answer})
}

// CallTool dispatches a tool directly, bypassing the model.
func (h *Handler) CallTool(w http.ResponseWriter, r *http.Request) {
	var req ToolRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request"})
			return
		}
	}

	name := chi.URLParam(r, "name")
	result := h.dispatcher.Dispatch(r.Context(), name, req.Args)
	if !result.OK {
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("SERVER: Failed to encode response", "error", err)
	}
}
