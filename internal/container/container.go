package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	database "github.com/FACorreiaa/go-trip-itinerary/app/db"
	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/config"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/cache"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/enrich"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/filter"
	generativeAI "github.com/FACorreiaa/go-trip-itinerary/internal/api/generative_ai"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/places"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/schedule"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/scoring"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/trip"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *slog.Logger
	Pool        *pgxpool.Pool
	Redis       *redis.Client
	TripService *trip.ServiceImpl
	TripHandler *trip.HandlerImpl
}

// NewContainer wires the itinerary pipeline from configuration. The cache
// backend decides whether Postgres or Redis connections are opened.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	metrics.InitAppMetrics()
	m := metrics.Get()

	store, err := c.newStore(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	rc := cache.New(store, m, logger)

	directory := places.NewGoogleDirectory(places.DirectoryConfig{
		BaseURL:    cfg.Places.BaseURL,
		APIKey:     cfg.Places.APIKey,
		Timeout:    cfg.Places.Timeout,
		MaxRetries: cfg.Places.MaxRetries,
	}, m, logger)
	if cfg.Places.APIKey == "" {
		logger.Warn("GOOGLE_MAPS_API_KEY is not set, place searches will be rejected upstream")
	}
	normalizer := places.NewNormalizer()

	var scoringOpts []scoring.Option
	if cfg.Scoring.LowScoreFloor {
		scoringOpts = append(scoringOpts, scoring.WithLowScoreFloor())
	}

	var extractor trip.Extractor
	var oracle schedule.Oracle
	generator, err := generativeAI.NewContentGenerator(ctx, cfg.LLM.Provider, cfg.LLMAPIKey(), cfg.LLM.Model, cfg.LLM.Temperature, logger)
	if err != nil {
		logger.Warn("Language model unavailable, free-text requests and oracle scheduling are disabled",
			slog.String("provider", cfg.LLM.Provider), slog.Any("error", err))
	} else {
		extractor = generativeAI.NewIntentExtractor(generator, logger)
		if cfg.Schedule.UseOracle {
			oracle = generativeAI.NewItineraryOracle(generator, logger)
		}
	}

	c.TripService = trip.NewServiceImpl(extractor, trip.Pipeline{
		Directory:  directory,
		Normalizer: normalizer,
		Cache:      rc,
		Enricher: enrich.NewEnricher(directory, normalizer, rc, enrich.Config{
			Concurrency: cfg.Enrichment.Concurrency,
			Timeout:     cfg.Enrichment.Timeout,
		}, m, logger),
		Scorer:        scoring.NewEngine(scoringOpts...),
		Filter:        filter.NewEngine(logger),
		Scheduler:     schedule.NewEngine(oracle, cfg.LLM.Timeout, m, logger),
		SearchTimeout: cfg.Places.Timeout,
	}, m, logger)
	c.TripHandler = trip.NewHandlerImpl(c.TripService, logger)

	return c, nil
}

func (c *Container) newStore(ctx context.Context) (cache.Store, error) {
	switch c.Config.Cache.Backend {
	case "", BackendMemory:
		return cache.NewMemoryStore(), nil

	case BackendPostgres:
		dbConfig, err := database.NewDatabaseConfig(c.Config, c.Logger)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(dbConfig.ConnectionURL, c.Logger); err != nil {
			return nil, err
		}
		pool, err := database.Init(ctx, dbConfig.ConnectionURL, c.Logger)
		if err != nil {
			return nil, err
		}
		c.Pool = pool
		if !database.WaitForDB(ctx, pool, c.Logger) {
			return nil, fmt.Errorf("database not ready")
		}
		return cache.NewPostgresStore(pool), nil

	case BackendRedis:
		rcfg := c.Config.Repositories.Redis
		client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     rcfg.Addr,
			Password: rcfg.Password,
			DB:       rcfg.DB,
			Prefix:   rcfg.Prefix,
		})
		if err != nil {
			return nil, err
		}
		c.Redis = client
		return cache.NewRedisStore(client, rcfg.Prefix), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", c.Config.Cache.Backend)
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("Failed to close redis client", slog.Any("error", err))
		}
	}
}
