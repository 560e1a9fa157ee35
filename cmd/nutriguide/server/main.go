package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joeshaw/envdecode"
	_ "github.com/joho/godotenv/autoload"

	"nutriguide"
	"nutriguide/dataset"
	"nutriguide/llm/ollama"
	"nutriguide/router"
	"nutriguide/server"
	"nutriguide/tools"
	"nutriguide/tools/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var modelConfig nutriguide.ModelConfig
	if err := envdecode.Decode(&modelConfig); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}
	var agentConfig nutriguide.AgentConfig
	if err := envdecode.Decode(&agentConfig); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}
	var serverConfig nutriguide.ServerConfig
	if err := envdecode.Decode(&serverConfig); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}

	data := dataset.NewCachedProvider(storage.NewFileDatasetState(agentConfig.ArtifactsDatasetPath), agentConfig.DatasetCacheTTL)
	registry, err := tools.NewRegistry(data, storage.NewFilePreferenceLog(agentConfig.ArtifactsPreferencesPath))
	if err != nil {
		log.Fatalf("SETUP: Failed to create tool registry: %s", err)
	}
	dispatcher, err := tools.NewDispatcher(registry)
	if err != nil {
		log.Fatalf("SETUP: Failed to create dispatcher: %s", err)
	}

	llm, err := ollama.NewClient(ollama.ClientOpts{
		BaseEndpoint: agentConfig.BaseOllamaEndpoint,
		ModelID:      modelConfig.ModelID,
		HTTPClient:   &http.Client{Timeout: 90 * time.Second},
		MaxTokens:    modelConfig.MaxTokens,
		Temperature:  modelConfig.Temperature,
		TopP:         modelConfig.TopP,
	})
	if err != nil {
		log.Fatalf("SETUP: Failed to create LLM client: %s", err)
	}

	_, _, otelShutdown, err := nutriguide.InitOtel(ctx)
	if err != nil {
		log.Fatalf("SETUP: Failed to initialize OpenTelemetry: %s", err)
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	r := router.New(llm, dispatcher, router.NewConfig(dispatcher.Tools()),
		router.WithTurnLogger(nutriguide.NewStdoutTurnLogger()),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", serverConfig.Port),
		Handler:           server.NewRouter(server.NewHandler(r, dispatcher)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("SERVER: Shutdown failed", "error", err)
		}
	}()

	slog.Info("SERVER: Listening", "addr", srv.Addr, "model", modelConfig.ModelID)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("SERVER: Stopped", "error", err)
	}
}
