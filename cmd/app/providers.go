package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/vaesta/outfit-advisor/internal/domain/evaluation"
	"github.com/vaesta/outfit-advisor/internal/domain/outfit"
	"github.com/vaesta/outfit-advisor/internal/domain/wardrobe"
	"github.com/vaesta/outfit-advisor/internal/infra/catalogstore"
	"github.com/vaesta/outfit-advisor/internal/infra/config"
	"github.com/vaesta/outfit-advisor/internal/infra/embedder"
	"github.com/vaesta/outfit-advisor/internal/infra/feedbackrepo"
	"github.com/vaesta/outfit-advisor/internal/infra/historystore"
	"github.com/vaesta/outfit-advisor/internal/infra/imagestore"
	"github.com/vaesta/outfit-advisor/internal/infra/llm/chatgpt"
	"github.com/vaesta/outfit-advisor/internal/infra/vision"
	"github.com/vaesta/outfit-advisor/internal/infra/wardroberepo"
	"github.com/vaesta/outfit-advisor/internal/infra/weather/openweather"
)

func provideOutfitConfig(cfg *config.Config) outfit.Config {
	return outfit.Config{
		StyleFit:     cfg.Engine.StyleFit,
		Alternatives: cfg.Engine.Alternatives,
	}
}

func provideWardrobeConfig(cfg *config.Config) wardrobe.Config {
	return wardrobe.Config{
		MaxImageBytes: cfg.Wardrobe.MaxImageBytes,
		SearchLimit:   cfg.Wardrobe.SearchLimit,
	}
}

func provideWeatherClient(cfg *config.Config, logger *slog.Logger) *openweather.Client {
	return openweather.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL, cfg.Weather.GeoURL, logger)
}

// provideChatGPTClient returns nil when no API key is configured; dependents
// fall back to offline behavior.
func provideChatGPTClient(cfg *config.Config) (*chatgpt.Client, error) {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		return nil, nil
	}
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
}

func provideVisionClient(cfg *config.Config, client *chatgpt.Client, logger *slog.Logger) wardrobe.VisionClient {
	return vision.NewChatGPTVision(client, cfg.LLM.VisionModel, logger)
}

func provideEmbedder(cfg *config.Config, client *chatgpt.Client, logger *slog.Logger) wardrobe.Embedder {
	if client == nil {
		logger.Info("llm api key not set, using deterministic embedder")
		return embedder.NewDeterministicEmbedder(cfg.Wardrobe.EmbeddingDim)
	}
	return embedder.NewChatGPTEmbedder(client, cfg.LLM.EmbeddingModel, logger)
}

// providePgxPool opens a shared Postgres pool, or returns nil when no DSN is
// configured or the database is unreachable.
func providePgxPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Wardrobe.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Wardrobe.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Wardrobe.Postgres.MaxConns
	}
	if cfg.Wardrobe.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Wardrobe.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres pool established")
	return pool
}

func provideWardrobeRepository(pool *pgxpool.Pool) wardrobe.Repository {
	if pool == nil {
		return wardroberepo.NewMemoryRepository()
	}
	return wardroberepo.NewPostgresRepository(pool)
}

func provideFeedbackRepository(pool *pgxpool.Pool) evaluation.Repository {
	if pool == nil {
		return feedbackrepo.NewMemoryRepository()
	}
	return feedbackrepo.NewPostgresRepository(pool)
}

func provideImageStorage(cfg *config.Config, logger *slog.Logger) (wardrobe.ImageStorage, error) {
	if !cfg.Wardrobe.Storage.Enabled {
		return imagestore.NewMemoryStorage(), nil
	}
	st := cfg.Wardrobe.Storage
	return imagestore.NewR2Storage(st.Endpoint, st.AccessKey, st.SecretKey, st.Bucket, st.Region, logger)
}

// provideCatalogSource feeds the engine from the seeded dataset when present,
// otherwise from the user's own wardrobe.
func provideCatalogSource(cfg *config.Config, repo wardrobe.Repository, logger *slog.Logger) outfit.CatalogSource {
	path := strings.TrimSpace(cfg.Engine.DatasetPath)
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			source, err := catalogstore.NewFileSource(path, logger)
			if err == nil {
				return source
			}
			logger.Error("failed to load garment dataset, using wardrobe catalog", "path", path, "error", err)
		} else {
			logger.Info("garment dataset not found, using wardrobe catalog", "path", path)
		}
	}
	return wardrobe.NewCatalogAdapter(repo)
}

func provideHistoryStore(cfg *config.Config, logger *slog.Logger) outfit.HistoryStore {
	if cfg.Engine.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg.Engine.Redis.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to file history", "error", err)
		} else if client, err := valkey.NewClient(opt); err != nil {
			logger.Error("failed to create valkey client, falling back to file history", "error", err)
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
				logger.Error("valkey ping failed, falling back to file history", "error", err)
			} else {
				logger.Info("valkey history store enabled", "addr", cfg.Engine.Redis.Addr)
				return historystore.NewValkeyStore(client, "outfit:history")
			}
		}
	}
	if path := strings.TrimSpace(cfg.Engine.HistoryPath); path != "" {
		store, err := historystore.NewFileStore(path)
		if err == nil {
			return store
		}
		logger.Error("failed to open history file, using memory store", "path", path, "error", err)
	}
	return historystore.NewMemoryStore()
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(addr, "://") {
		opt, err = valkey.ParseURL(addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
