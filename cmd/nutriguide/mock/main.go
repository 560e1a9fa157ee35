package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joeshaw/envdecode"
	_ "github.com/joho/godotenv/autoload"

	"nutriguide"
	"nutriguide/dataset"
	"nutriguide/llm/mock"
	"nutriguide/router"
	"nutriguide/tools"
	"nutriguide/tools/storage"
)

// Runs the router against the keyword-routed mock model. With arguments, the
// arguments are asked as one question; otherwise an interactive session starts.
func main() {
	ctx := context.Background()

	var agentConfig nutriguide.AgentConfig
	if err := envdecode.Decode(&agentConfig); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}

	data, err := datasetProvider(agentConfig)
	if err != nil {
		slog.Error("SETUP: Failed to load dataset", "error", err)
		return
	}
	registry, err := tools.NewRegistry(data, storage.NewFilePreferenceLog(agentConfig.ArtifactsPreferencesPath))
	if err != nil {
		slog.Error("SETUP: Failed to create tool registry", "error", err)
		return
	}
	dispatcher, err := tools.NewDispatcher(registry)
	if err != nil {
		slog.Error("SETUP: Failed to create dispatcher", "error", err)
		return
	}

	var turnLogger nutriguide.TurnLogger = nutriguide.NewNoOpTurnLogger()
	if agentConfig.Debug {
		turnLogger = nutriguide.NewDumpTurnLogger(turnLogger, os.Stderr)
	}

	r := router.New(mock.NewClient(), dispatcher, router.NewConfig(dispatcher.Tools()), router.WithTurnLogger(turnLogger))

	if len(os.Args) > 1 {
		answer, err := r.Ask(ctx, strings.Join(os.Args[1:], " "))
		if err != nil {
			slog.Error("FAILURE: Error handling question", "error", err)
			os.Exit(1)
		}
		fmt.Println(answer)
		return
	}

	if err := nutriguide.RunREPL(ctx, os.Stdin, os.Stdout, r); err != nil {
		slog.Error("FAILURE: Reading input", "error", err)
	}
}

// datasetProvider reads the configured dataset file, falling back to the
// built-in sample when the file does not exist.
func datasetProvider(cfg nutriguide.AgentConfig) (dataset.Provider, error) {
	if _, err := os.Stat(cfg.ArtifactsDatasetPath); err == nil {
		return dataset.NewCachedProvider(storage.NewFileDatasetState(cfg.ArtifactsDatasetPath), cfg.DatasetCacheTTL), nil
	}
	slog.Warn("SETUP: Dataset file not found, using built-in sample", "path", cfg.ArtifactsDatasetPath)
	ds, err := dataset.Parse(dataset.SampleDocument)
	if err != nil {
		return nil, err
	}
	return dataset.NewStatic(ds), nil
}
