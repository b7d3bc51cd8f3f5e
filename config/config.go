package config

import "github.com/caarlos0/env/v6"

type Config struct {
	Server struct {
		Port string `env:"PORT" envDefault:"5250"`
	}

	Database struct {
		Path string `env:"DB_PATH" envDefault:"database/listings.db"`
	}

	Telegram struct {
		BotToken string `env:"TELEGRAM_BOT_TOKEN"`

		// Long-poll timeout for getUpdates, in seconds
		PollTimeout int `env:"TELEGRAM_POLL_TIMEOUT" envDefault:"30"`
	}

	OpenAI struct {
		// Empty key disables AI extraction and selection entirely
		APIKey string `env:"OPENAI_API_KEY"`

		Model string `env:"OPENAI_MODEL" envDefault:"gpt-4o"`

		// Per-attempt timeout for completion calls, in seconds
		Timeout int `env:"OPENAI_TIMEOUT" envDefault:"30"`
	}

	Search struct {
		// Maximum candidates pulled from the store per district query
		CandidateLimit int `env:"SEARCH_CANDIDATE_LIMIT" envDefault:"100"`

		// Maximum listings returned to the user
		ResultLimit int `env:"SEARCH_RESULT_LIMIT" envDefault:"10"`
	}

	// BatchProcessing configuration for the listings ingestion workers
	BatchProcessing struct {
		// Queue buffer size in batches
		QueueSize int `env:"BATCH_QUEUE_SIZE" envDefault:"100"`

		// Number of concurrent batch processors
		ProcessorCount int `env:"BATCH_PROCESSOR_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"5"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
