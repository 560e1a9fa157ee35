package nutriguide

import "time"

type ModelConfig struct {
	ModelID     string  `env:"MODEL_ID,required"`
	MaxTokens   int32   `env:"MAX_TOKENS,default=1024"`
	Temperature float32 `env:"TEMPERATURE,default=0.2"`
	TopP        float32 `env:"TOP_P,default=0.9"`
}

type AgentConfig struct {
	ArtifactsDatasetPath     string        `env:"ARTIFACTS_DATASET_PATH,default=artifacts/mock_data.json"`
	ArtifactsPreferencesPath string        `env:"ARTIFACTS_PREFERENCES_PATH,default=artifacts/user_preferences.json"`
	BaseOllamaEndpoint       string        `env:"BASE_OLLAMA_ENDPOINT,default=http://localhost:11434"`
	DatasetCacheTTL          time.Duration `env:"DATASET_CACHE_TTL,default=0s"`
	Debug                    bool          `env:"NUTRIGUIDE_DEBUG,default=false"`
}

// S3Config locates the dataset and preference log when running in Lambda.
type S3Config struct {
	Bucket         string `env:"ARTIFACTS_S3_BUCKET,required"`
	DatasetKey     string `env:"ARTIFACTS_DATASET_S3_KEY,default=mock_data.json"`
	PreferencesKey string `env:"ARTIFACTS_PREFERENCES_S3_KEY,default=user_preferences.json"`
}

type ServerConfig struct {
	Port int `env:"PORT,default=8080"`
}

type SlackConfig struct {
	WebhookURL string `env:"SLACK_WEBHOOK_URL"`
	Channel    string `env:"SLACK_CHANNEL,default=#nutriguide"`
}
