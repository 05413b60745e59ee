package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Weather  WeatherConfig  `yaml:"weather"`
	Engine   EngineConfig   `yaml:"engine"`
	Wardrobe WardrobeConfig `yaml:"wardrobe"`
	LLM      LLMConfig      `yaml:"llm"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	Retry        RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// WeatherConfig contains OpenWeatherMap settings. An empty API key switches
// the client to canned readings for local dev.
type WeatherConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseUrl"`
	GeoURL  string `yaml:"geoUrl"`
}

// EngineConfig tunes the recommendation engine.
type EngineConfig struct {
	StyleFit     float64     `yaml:"styleFit"`
	Alternatives int         `yaml:"alternatives"`
	DatasetPath  string      `yaml:"datasetPath"`
	HistoryPath  string      `yaml:"historyPath"`
	Redis        RedisConfig `yaml:"redis"`
}

// WardrobeConfig controls the personal wardrobe domain.
type WardrobeConfig struct {
	MaxImageBytes int64          `yaml:"maxImageBytes"`
	SearchLimit   int            `yaml:"searchLimit"`
	EmbeddingDim  int            `yaml:"embeddingDim"`
	Postgres      PostgresConfig `yaml:"postgres"`
	Storage       StorageConfig  `yaml:"storage"`
}

// StorageConfig contains S3-compatible object storage credentials.
type StorageConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// LLMConfig contains ChatGPT/OpenAI settings.
type LLMConfig struct {
	APIKey         string  `yaml:"apiKey"`
	BaseURL        string  `yaml:"baseUrl"`
	VisionModel    string  `yaml:"visionModel"`
	EmbeddingModel string  `yaml:"embeddingModel"`
	Temperature    float32 `yaml:"temperature"`
}

// RedisConfig contains connection information for the history store.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("WEATHER_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("WEATHER_BASE_URL"); v != "" {
		cfg.Weather.BaseURL = v
	}
	if v := os.Getenv("WEATHER_GEO_URL"); v != "" {
		cfg.Weather.GeoURL = v
	}
	if v := os.Getenv("ENGINE_STYLE_FIT"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Engine.StyleFit = parsed
		}
	}
	if v := os.Getenv("ENGINE_ALTERNATIVES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Engine.Alternatives = parsed
		}
	}
	if v := os.Getenv("ENGINE_DATASET_PATH"); v != "" {
		cfg.Engine.DatasetPath = v
	}
	if v := os.Getenv("ENGINE_HISTORY_PATH"); v != "" {
		cfg.Engine.HistoryPath = v
	}
	if v := os.Getenv("ENGINE_REDIS_ENABLED"); v != "" {
		cfg.Engine.Redis.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("ENGINE_REDIS_ADDR"); v != "" {
		cfg.Engine.Redis.Addr = v
	}
	if v := os.Getenv("WARDROBE_MAX_IMAGE_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Wardrobe.MaxImageBytes = parsed
		}
	}
	if v := os.Getenv("WARDROBE_SEARCH_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Wardrobe.SearchLimit = parsed
		}
	}
	if v := os.Getenv("WARDROBE_EMBEDDING_DIM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Wardrobe.EmbeddingDim = parsed
		}
	}
	if v := os.Getenv("WARDROBE_POSTGRES_DSN"); v != "" {
		cfg.Wardrobe.Postgres.DSN = v
	}
	if v := os.Getenv("WARDROBE_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Wardrobe.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("WARDROBE_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Wardrobe.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("WARDROBE_STORAGE_ENABLED"); v != "" {
		cfg.Wardrobe.Storage.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("WARDROBE_STORAGE_ENDPOINT"); v != "" {
		cfg.Wardrobe.Storage.Endpoint = v
	}
	if v := os.Getenv("WARDROBE_STORAGE_ACCESS_KEY"); v != "" {
		cfg.Wardrobe.Storage.AccessKey = v
	}
	if v := os.Getenv("WARDROBE_STORAGE_SECRET_KEY"); v != "" {
		cfg.Wardrobe.Storage.SecretKey = v
	}
	if v := os.Getenv("WARDROBE_STORAGE_BUCKET"); v != "" {
		cfg.Wardrobe.Storage.Bucket = v
	}
	if v := os.Getenv("WARDROBE_STORAGE_REGION"); v != "" {
		cfg.Wardrobe.Storage.Region = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_VISION_MODEL"); v != "" {
		cfg.LLM.VisionModel = v
	}
	if v := os.Getenv("LLM_EMBEDDING_MODEL"); v != "" {
		cfg.LLM.EmbeddingModel = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				// Photo uploads exceed the retry body buffer.
				Exclude: []string{
					"/api/v1/wardrobe/items",
				},
			},
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.openweathermap.org/data/2.5",
			GeoURL:  "https://api.openweathermap.org/geo/1.0",
		},
		Engine: EngineConfig{
			StyleFit:     5.0,
			Alternatives: 2,
			DatasetPath:  "data/clothing_items.json",
			HistoryPath:  "data/recommendation_history.json",
		},
		Wardrobe: WardrobeConfig{
			MaxImageBytes: 8 << 20,
			SearchLimit:   10,
			EmbeddingDim:  1536,
			Postgres: PostgresConfig{
				MaxConns: 4,
				MinConns: 0,
			},
		},
		LLM: LLMConfig{
			VisionModel:    "gpt-4o-mini",
			EmbeddingModel: "text-embedding-3-small",
			Temperature:    0.2,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Weather.BaseURL == "" {
		return errors.New("weather.baseUrl cannot be empty")
	}
	if c.Engine.StyleFit < 0 || c.Engine.StyleFit > 10 {
		return errors.New("engine.styleFit must be between 0 and 10")
	}
	if c.Engine.Alternatives < 0 {
		return errors.New("engine.alternatives cannot be negative")
	}
	if c.Engine.Redis.Enabled && strings.TrimSpace(c.Engine.Redis.Addr) == "" {
		return errors.New("engine.redis.addr cannot be empty when the redis history store is enabled")
	}
	if c.Wardrobe.MaxImageBytes <= 0 {
		return errors.New("wardrobe.maxImageBytes must be positive")
	}
	if c.Wardrobe.SearchLimit <= 0 {
		return errors.New("wardrobe.searchLimit must be positive")
	}
	if c.Wardrobe.EmbeddingDim <= 0 {
		return errors.New("wardrobe.embeddingDim must be positive")
	}
	if c.Wardrobe.Storage.Enabled {
		if strings.TrimSpace(c.Wardrobe.Storage.Endpoint) == "" {
			return errors.New("wardrobe.storage.endpoint cannot be empty when object storage is enabled")
		}
		if strings.TrimSpace(c.Wardrobe.Storage.Bucket) == "" {
			return errors.New("wardrobe.storage.bucket cannot be empty when object storage is enabled")
		}
	}
	if strings.TrimSpace(c.LLM.EmbeddingModel) == "" {
		return errors.New("llm.embeddingModel cannot be empty")
	}
	if strings.TrimSpace(c.LLM.VisionModel) == "" {
		return errors.New("llm.visionModel cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}
