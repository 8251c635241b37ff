package config

import (
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Bluesky struct {
		AppViewURL     string        `env:"BLUESKY_APPVIEW_URL" env-default:"https://public.api.bsky.app"`
		PLCDirectory   string        `env:"BLUESKY_PLC_DIRECTORY" env-default:"https://plc.directory"`
		InterPageDelay time.Duration `env:"BLUESKY_INTER_PAGE_DELAY" env-default:"1s"`
		RequestTimeout time.Duration `env:"BLUESKY_REQUEST_TIMEOUT" env-default:"30s"`
	}
	Collector struct {
		PerAccountLikes int `env:"COLLECTOR_PER_ACCOUNT_LIKES" env-default:"25"`
		Concurrency     int `env:"COLLECTOR_CONCURRENCY" env-default:"5"`
	}
	Embedding struct {
		APIURL     string `env:"EMBEDDING_API_URL" env-default:"https://api.openai.com/v1/embeddings"`
		APIKey     string `env:"EMBEDDING_API_KEY"`
		Model      string `env:"EMBEDDING_MODEL" env-default:"text-embedding-3-small"`
		Dimensions int    `env:"EMBEDDING_DIMENSIONS" env-default:"512"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}
