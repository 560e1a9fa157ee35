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

	"github.com/joeshaw/envdecode"
	_ "github.com/joho/godotenv/autoload"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"nutriguide"
	"nutriguide/dataset"
	"nutriguide/llm/ollama"
	"nutriguide/router"
	"nutriguide/tools"
	"nutriguide/tools/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var modelConfig nutriguide.ModelConfig
	if err := envdecode.Decode(&modelConfig); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}

	var agentConfig nutriguide.AgentConfig
	if err := envdecode.Decode(&agentConfig); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}

	data := dataset.NewCachedProvider(storage.NewFileDatasetState(agentConfig.ArtifactsDatasetPath), agentConfig.DatasetCacheTTL)
	prefs := storage.NewFilePreferenceLog(agentConfig.ArtifactsPreferencesPath)
	registry, err := tools.NewRegistry(data, prefs)
	if err != nil {
		slog.Error("SETUP: Failed to create tool registry", "error", err)
		return
	}
	dispatcher, err := tools.NewDispatcher(registry)
	if err != nil {
		slog.Error("SETUP: Failed to create dispatcher", "error", err)
		return
	}

	var turnLogger nutriguide.TurnLogger
	fileLogger, cleanup, err := newTurnLogger(modelConfig.ModelID)
	if err != nil {
		slog.Error("SETUP: Failed to create turn logger", "error", err)
		return
	}
	defer func() {
		if err := cleanup(); err != nil {
			slog.Error("SETUP: Failed to flush turn log", "error", err)
		}
	}()
	turnLogger = fileLogger
	if agentConfig.Debug {
		turnLogger = nutriguide.NewDumpTurnLogger(fileLogger, os.Stderr)
	}

	llm, err := ollama.NewClient(ollama.ClientOpts{
		BaseEndpoint: agentConfig.BaseOllamaEndpoint,
		ModelID:      modelConfig.ModelID,
		HTTPClient:   http.DefaultClient,
		MaxTokens:    modelConfig.MaxTokens,
		Temperature:  modelConfig.Temperature,
		TopP:         modelConfig.TopP,
	})
	if err != nil {
		slog.Error("SETUP: Failed to create LLM client", "error", err)
		return
	}

	tracerProvider, meterProvider, otelShutdown, err := nutriguide.InitOtel(ctx)
	if err != nil {
		slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
		return
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	tracer := tracerProvider.Tracer(nutriguide.TracerNameRouter)
	ctx, span := tracer.Start(ctx, "nutriguide.repl", trace.WithAttributes(
		attribute.String("model.id", modelConfig.ModelID),
		attribute.String("model.endpoint", agentConfig.BaseOllamaEndpoint),
	))
	defer span.End()

	r := router.New(llm, dispatcher, router.NewConfig(dispatcher.Tools()),
		router.WithTurnLogger(turnLogger),
		router.WithTracer(tracer),
		router.WithMeter(meterProvider.Meter(nutriguide.MeterNameRouter)),
	)

	if err := nutriguide.RunREPL(ctx, os.Stdin, os.Stdout, r); err != nil {
		slog.Error("FAILURE: Reading input", "error", err)
	}
}

func newTurnLogger(modelID string) (*nutriguide.FileTurnLogger, func() error, error) {
	logFilePath := nutriguide.NewTurnLogFilePath(modelID)
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := nutriguide.NewFileTurnLogger(logFile)
	cleanup := func() error {
		return errors.Join(logger.Flush(), logFile.Close())
	}
	return logger, cleanup, nil
}
