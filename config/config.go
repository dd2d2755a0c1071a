package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Handlers struct {
		Prometheus struct {
			Port    string `mapstructure:"port"`
			Enabled bool   `mapstructure:"enabled"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
		Redis struct {
			Addr     string `mapstructure:"addr"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
			Prefix   string `mapstructure:"prefix"`
		} `mapstructure:"redis"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort          string        `mapstructure:"HTTPPort"`
		Timeout           time.Duration `mapstructure:"HTTPTimeout"`
		AllowedOrigins    []string      `mapstructure:"allowedOrigins"`
		RequestsPerMinute int           `mapstructure:"requestsPerMinute"`
	} `mapstructure:"server"`
	Cache struct {
		Backend string `mapstructure:"backend"`
	} `mapstructure:"cache"`
	Places struct {
		BaseURL    string        `mapstructure:"baseURL"`
		APIKey     string        `mapstructure:"apiKey"`
		Timeout    time.Duration `mapstructure:"timeout"`
		MaxRetries int           `mapstructure:"maxRetries"`
	} `mapstructure:"places"`
	Enrichment struct {
		Concurrency int           `mapstructure:"concurrency"`
		Timeout     time.Duration `mapstructure:"timeout"`
	} `mapstructure:"enrichment"`
	LLM struct {
		Provider    string        `mapstructure:"provider"`
		Model       string        `mapstructure:"model"`
		Temperature float32       `mapstructure:"temperature"`
		Timeout     time.Duration `mapstructure:"timeout"`
		Gemini      struct {
			APIKey string `mapstructure:"apiKey"`
		} `mapstructure:"gemini"`
		OpenAI struct {
			APIKey string `mapstructure:"apiKey"`
		} `mapstructure:"openai"`
	} `mapstructure:"llm"`
	Scoring struct {
		LowScoreFloor bool `mapstructure:"lowScoreFloor"`
	} `mapstructure:"scoring"`
	Schedule struct {
		UseOracle bool `mapstructure:"useOracle"`
	} `mapstructure:"schedule"`
}

// LLMAPIKey returns the key of the configured provider.
func (c *Config) LLMAPIKey() string {
	if strings.EqualFold(c.LLM.Provider, "openai") {
		return c.LLM.OpenAI.APIKey
	}
	return c.LLM.Gemini.APIKey
}

var envBindings = map[string]string{
	"places.apiKey":                  "GOOGLE_MAPS_API_KEY",
	"llm.gemini.apiKey":              "GOOGLE_GEMINI_API_KEY",
	"llm.openai.apiKey":              "OPENAI_API_KEY",
	"repositories.postgres.password": "POSTGRES_PASSWORD",
	"repositories.redis.password":    "REDIS_PASSWORD",
	"cache.backend":                  "CACHE_BACKEND",
	"llm.provider":                   "LLM_PROVIDER",
	"server.HTTPPort":                "HTTP_PORT",
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return config, nil
}
