package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeshaw/envdecode"

	"nutriguide"
	"nutriguide/dataset"
	"nutriguide/llm/bedrock"
	"nutriguide/router"
	"nutriguide/slack"
	"nutriguide/tools"
	"nutriguide/tools/storage"
)

type Params struct {
	Message string `json:"message"`
}

type Results struct {
	Answer string `json:"answer"`
}

type app struct {
	router  *router.Router
	slack   nutriguide.SlackClient
	channel string
}

func main() {
	ctx := context.Background()

	a, err := setup(ctx)
	if err != nil {
		slog.Error("SETUP: Failed to initialize", "error", err)
		panic(err)
	}

	lambda.Start(a.handle)
}

func setup(ctx context.Context) (*app, error) {
	var modelConfig nutriguide.ModelConfig
	if err := envdecode.Decode(&modelConfig); err != nil {
		return nil, fmt.Errorf("decode model config: %w", err)
	}
	var agentConfig nutriguide.AgentConfig
	if err := envdecode.Decode(&agentConfig); err != nil {
		return nil, fmt.Errorf("decode agent config: %w", err)
	}
	var s3Config nutriguide.S3Config
	if err := envdecode.Decode(&s3Config); err != nil {
		return nil, fmt.Errorf("decode S3 config: %w", err)
	}
	var slackConfig nutriguide.SlackConfig
	if err := envdecode.Decode(&slackConfig); err != nil {
		return nil, fmt.Errorf("decode slack config: %w", err)
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRetryMaxAttempts(5))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	s3Client := s3.NewFromConfig(awsCfg)

	// Warm containers keep the snapshot between invocations.
	data := dataset.NewCachedProvider(
		storage.NewS3DatasetState(s3Client, s3Config.Bucket, s3Config.DatasetKey),
		agentConfig.DatasetCacheTTL,
	)
	prefs := storage.NewS3PreferenceLog(s3Client, s3Config.Bucket, s3Config.PreferencesKey)
	registry, err := tools.NewRegistry(data, prefs)
	if err != nil {
		return nil, err
	}
	dispatcher, err := tools.NewDispatcher(registry)
	if err != nil {
		return nil, err
	}
	slog.Info("SETUP: S3 dataset and preference log initialized", "bucket", s3Config.Bucket)

	llm := bedrock.NewClient(bedrockruntime.NewFromConfig(awsCfg), bedrock.Options{
		ModelID:     modelConfig.ModelID,
		MaxTokens:   modelConfig.MaxTokens,
		Temperature: modelConfig.Temperature,
		TopP:        modelConfig.TopP,
	})

	a := &app{
		router: router.New(llm, dispatcher, router.NewConfig(dispatcher.Tools()),
			router.WithTurnLogger(nutriguide.NewStdoutTurnLogger()),
		),
		channel: slackConfig.Channel,
	}
	if slackConfig.WebhookURL != "" {
		a.slack = slack.NewClient(slackConfig.WebhookURL, http.DefaultClient)
	}
	return a, nil
}

func (a *app) handle(ctx context.Context, params Params) (Results, error) {
	if strings.TrimSpace(params.Message) == "" {
		return Results{}, fmt.Errorf("message is required")
	}

	_, _, otelShutdown, err := nutriguide.InitOtel(ctx)
	if err != nil {
		slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
		return Results{}, err
	}
	defer func() {
		if err := otelShutdown(ctx); err != nil {
			slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	answer, err := a.router.Ask(ctx, params.Message)
	if err != nil {
		slog.Error("RESULT: Error handling message", "error", err)
		return Results{}, err
	}

	if a.slack != nil {
		if err := a.slack.PostAnswer(ctx, a.channel, params.Message, answer); err != nil {
			slog.Error("RESULT: Failed to post answer to Slack", "error", err)
		}
	}

	return Results{Answer: answer}, nil
}
