package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/primev/fantasy-volleyball/internal/config"
	"github.com/primev/fantasy-volleyball/internal/domain/contest"
	"github.com/primev/fantasy-volleyball/internal/domain/fantasy"
	"github.com/primev/fantasy-volleyball/internal/domain/roster"
	"github.com/primev/fantasy-volleyball/internal/domain/stats"
	"github.com/primev/fantasy-volleyball/internal/infrastructure/account"
	"github.com/primev/fantasy-volleyball/internal/infrastructure/repository/memory"
	"github.com/primev/fantasy-volleyball/internal/infrastructure/repository/postgres"
	"github.com/primev/fantasy-volleyball/internal/infrastructure/statfeed"
	"github.com/primev/fantasy-volleyball/internal/interfaces/httpapi"
	idgen "github.com/primev/fantasy-volleyball/internal/platform/id"
	"github.com/primev/fantasy-volleyball/internal/platform/logging"
	"github.com/primev/fantasy-volleyball/internal/platform/resilience"
	"github.com/primev/fantasy-volleyball/internal/usecase"
)

type repositories struct {
	roster   roster.Repository
	team     fantasy.Repository
	stats    stats.Repository
	contest  contest.Repository
	template contest.TemplateRepository
}

// NewHTTPServer wires repositories, services and the HTTP router into a
// ready-to-run server. The returned cleanup releases storage handles and
// must be called after shutdown.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*http.Server, func() error, error) {
	repos, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	idGenerator := idgen.NewRandomGenerator()

	rosterSvc := usecase.NewRosterService(repos.roster, logger)
	teamSvc := usecase.NewTeamService(repos.roster, repos.team, fantasy.DefaultRules(), idGenerator, logger)
	scoringSvc := usecase.NewScoringService(repos.contest, repos.team, repos.stats, logger)
	ingestionSvc := usecase.NewStatsIngestionService(repos.stats, scoringSvc, logger)
	contestSvc := usecase.NewContestService(repos.contest, repos.template, repos.team, repos.roster, idGenerator, logger)
	leaderboardSvc := usecase.NewLeaderboardService(repos.contest, scoringSvc, logger)

	var provider usecase.StatProvider
	if cfg.StatfeedEnabled {
		provider = statfeed.NewClient(statfeed.ClientConfig{
			BaseURL:    cfg.StatfeedBaseURL,
			Token:      cfg.StatfeedToken,
			Timeout:    cfg.StatfeedTimeout,
			MaxRetries: cfg.StatfeedMaxRetries,
			Logger:     logging.Default(),
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.StatfeedCircuitEnabled,
				FailureThreshold: cfg.StatfeedCircuitFailureCount,
				OpenTimeout:      cfg.StatfeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.StatfeedCircuitHalfOpenMaxReq,
			},
		})
	}
	statfeedSvc := usecase.NewStatfeedService(provider, ingestionSvc, repos.roster, logger)

	accountClient := account.NewClient(account.ClientConfig{
		BaseURL:        cfg.AccountBaseURL,
		IntrospectPath: cfg.AccountIntrospectPath,
		Timeout:        cfg.AccountTimeout,
		CacheTTL:       cfg.AccountCacheTTL,
		Logger:         logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AccountCircuitEnabled,
			FailureThreshold: cfg.AccountCircuitFailureCount,
			OpenTimeout:      cfg.AccountCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AccountCircuitHalfOpenMaxReq,
		},
	})

	handler := httpapi.NewHandler(
		rosterSvc,
		teamSvc,
		contestSvc,
		scoringSvc,
		leaderboardSvc,
		ingestionSvc,
		statfeedSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, accountClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *slog.Logger) (repositories, func() error, error) {
	noopCleanup := func() error { return nil }

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, nil, fmt.Errorf("open database: %w", err)
		}
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			db.Close()
			return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
		}
		logger.InfoContext(ctx, "storage ready", "driver", cfg.StorageDriver, "db", dbNameFromURL(cfg.DBURL))

		contestRepo := postgres.NewContestRepository(db)
		return repositories{
			roster:   postgres.NewRosterRepository(db),
			team:     postgres.NewTeamRepository(db),
			stats:    postgres.NewStatsRepository(db),
			contest:  contestRepo,
			template: contestRepo,
		}, db.Close, nil

	case config.StorageMemory:
		logger.InfoContext(ctx, "storage ready", "driver", cfg.StorageDriver)
		contestRepo := memory.NewContestRepository(memory.SeedContests(), memory.SeedContestTemplates())
		return repositories{
			roster:   memory.NewRosterRepository(memory.SeedMatches(), memory.SeedPlayerSlots()),
			team:     memory.NewTeamRepository(),
			stats:    memory.NewStatsRepository(),
			contest:  contestRepo,
			template: contestRepo,
		}, noopCleanup, nil

	default:
		return repositories{}, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
