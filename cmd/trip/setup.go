package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sandevgo/tripsmith/internal/config"
	"github.com/sandevgo/tripsmith/internal/core"
	"github.com/sandevgo/tripsmith/internal/providers/events"
	"github.com/sandevgo/tripsmith/internal/providers/fetch"
	"github.com/sandevgo/tripsmith/internal/providers/llm"
	"github.com/sandevgo/tripsmith/internal/providers/weather"
	"github.com/sandevgo/tripsmith/internal/service/agent"
	"github.com/sandevgo/tripsmith/internal/service/budget"
	"github.com/sandevgo/tripsmith/internal/service/command"
	"github.com/sandevgo/tripsmith/internal/service/dispatch"
	"github.com/sandevgo/tripsmith/internal/service/prompts"
	"github.com/sandevgo/tripsmith/internal/service/session"
	"github.com/sandevgo/tripsmith/internal/storage/cache"
	"github.com/sandevgo/tripsmith/internal/storage/sqlite"
	"github.com/sandevgo/tripsmith/internal/transport/cli"
	"github.com/sandevgo/tripsmith/pkg/log"
	"github.com/sandevgo/tripsmith/pkg/retry"
	"github.com/sandevgo/tripsmith/pkg/srv"
)

const janitorInterval = 10 * time.Minute

// enrichment bundles the data adapters shared by the chat and lookup commands.
type enrichment struct {
	weather  *weather.Service
	events   *events.Ticketmaster
	budget   *budget.Estimator
	services []srv.Service
}

// NewChat wires the REPL and the background services it depends on.
func NewChat(ctx context.Context) (srv.Service, []srv.Service, error) {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to init env: %w", err)
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	providerCfg := config.NewProviderConfig(ctx)
	enrichCfg := config.NewEnrichmentConfig(ctx)

	catalog, err := prompts.Load(appCfg.GetPromptsPath())
	if err != nil {
		return nil, nil, err
	}

	// 2. Data adapters
	enrich := newEnrichment(ctx, enrichCfg)
	services := enrich.services

	// 3. AI Provider
	ai, err := llm.NewProvider(ctx, providerCfg)
	if err != nil {
		release(ctx, services)
		return nil, nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}
	if closer, ok := ai.(io.Closer); ok {
		services = append(services, srv.NewCleanup(closer.Close))
	}

	// 4. Journal
	var journal core.TurnJournal
	if appCfg.JournalEnabled {
		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			release(ctx, services)
			return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		services = append(services, srv.NewCleanup(db.Close))
		journal = sqlite.NewJournal(db)
		logger.Debug().Str("path", appCfg.GetDatabasePath()).Msg("turn journal enabled")
	}

	// 5. Agent
	dispatcher := dispatch.NewDispatcher(enrich.weather, enrich.events, enrich.budget, appCfg.HomeCity)
	ag := agent.NewAgent(ai, catalog, dispatcher, agent.WithJournal(journal))

	sessions := session.NewManager(catalog.Seed(), session.WithMaxTurns(appCfg.MaxTurns, appCfg.EvictOldest))
	commands := command.New(command.NewCommands(providerCfg, ai, sessions, journal))

	// 6. Transport
	repl, err := cli.NewReadLine(appCfg, ag, sessions, commands)
	if err != nil {
		release(ctx, services)
		return nil, nil, fmt.Errorf("failed to start the REPL: %w", err)
	}

	return repl, services, nil
}

func newEnrichment(ctx context.Context, cfg *config.EnrichmentConfig) *enrichment {
	logger := log.FromCtx(ctx)
	fetcher := fetch.New(cfg.HTTPTimeout, retry.NewAdapterConfig(cfg.HTTPRetries))

	var services []srv.Service
	var store core.Cache
	if cfg.RedisEnabled() {
		r := cache.NewRedis(cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := r.Ping(ctx); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, using in-memory cache")
			_ = r.Close()
		} else {
			store = r
			services = append(services, srv.NewCleanup(r.Close))
		}
	}
	if store == nil {
		mem := cache.NewMemory()
		store = mem
		services = append(services, cache.NewJanitor(mem, janitorInterval))
	}

	var geocoder weather.Geocoder = weather.NewOpenMeteoGeocoder(fetcher)
	if cfg.GoogleMapsAPIKey != "" {
		g, err := weather.NewGoogleGeocoder(cfg.GoogleMapsAPIKey)
		if err != nil {
			logger.Warn().Err(err).Msg("google geocoder unavailable, using Open-Meteo")
		} else {
			geocoder = g
		}
	}

	var normals weather.NormalsSource = weather.NewOpenMeteoArchive(fetcher)
	if cfg.MeteostatAPIKey != "" {
		normals = weather.NewMeteostat(fetcher, cfg.MeteostatAPIKey)
	}

	if !cfg.EventsEnabled() {
		logger.Debug().Msg("TICKETMASTER_API_KEY not set, events lookups return nothing")
	}

	return &enrichment{
		weather:  weather.NewService(geocoder, normals, weather.WithCache(store, cfg.CacheTTL)),
		events:   events.NewTicketmaster(fetcher, cfg.TicketmasterAPIKey),
		budget:   budget.NewEstimator(),
		services: services,
	}
}

// release shuts down services that were created before a later setup step failed.
func release(ctx context.Context, services []srv.Service) {
	for _, s := range services {
		if err := s.Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msgf("%T failed to release", s)
		}
	}
}

// initEnv loads ./.env and then the runtime .env. Variables already set win.
func initEnv(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	if err := loadEnvFile(".env"); err != nil {
		return err
	}

	appCfg, err := config.LoadAppConfig(env.Options{})
	if err != nil {
		return err
	}
	envFile := filepath.Join(appCfg.GetRuntimePath(), ".env")
	if err := loadEnvFile(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("env files loaded")
	return nil
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}
