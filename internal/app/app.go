package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/tochoprime/league-console/internal/config"
	"github.com/tochoprime/league-console/internal/domain/category"
	"github.com/tochoprime/league-console/internal/domain/division"
	"github.com/tochoprime/league-console/internal/domain/field"
	"github.com/tochoprime/league-console/internal/domain/match"
	"github.com/tochoprime/league-console/internal/domain/payment"
	"github.com/tochoprime/league-console/internal/domain/player"
	"github.com/tochoprime/league-console/internal/domain/referee"
	"github.com/tochoprime/league-console/internal/domain/season"
	"github.com/tochoprime/league-console/internal/domain/team"
	"github.com/tochoprime/league-console/internal/infrastructure/calendar"
	"github.com/tochoprime/league-console/internal/infrastructure/catalog"
	cachedrepo "github.com/tochoprime/league-console/internal/infrastructure/repository/cache"
	"github.com/tochoprime/league-console/internal/infrastructure/repository/memory"
	"github.com/tochoprime/league-console/internal/infrastructure/repository/postgres"
	"github.com/tochoprime/league-console/internal/interfaces/httpapi"
	basecache "github.com/tochoprime/league-console/internal/platform/cache"
	idgen "github.com/tochoprime/league-console/internal/platform/id"
	"github.com/tochoprime/league-console/internal/platform/logging"
	"github.com/tochoprime/league-console/internal/platform/phone"
	"github.com/tochoprime/league-console/internal/platform/resilience"
	"github.com/tochoprime/league-console/internal/scheduler"
	"github.com/tochoprime/league-console/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	dbMaxOpenConns    = 10
	dbMaxIdleConns    = 5
	dbConnMaxLifetime = 30 * time.Minute
	dbPingTimeout     = 5 * time.Second
)

// App is the assembled process: the HTTP server, the optional scheduler and
// whatever storage handles need closing on shutdown.
type App struct {
	Server    *http.Server
	Scheduler *scheduler.Service
	closers   []func() error
}

type repositories struct {
	seasons    season.Repository
	divisions  division.Repository
	categories category.Repository
	fields     field.Repository
	teams      team.Repository
	players    player.Repository
	payments   payment.Repository
	matches    match.Repository
	referees   referee.Repository
}

type services struct {
	season   *usecase.SeasonService
	category *usecase.CategoryService
	field    *usecase.FieldService
	player   *usecase.PlayerService
	team     *usecase.TeamService
	match    *usecase.MatchService
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	app := &App{}
	repos, err := app.openRepositories(ctx, cfg, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	svcs, err := newServices(cfg, repos, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	handler := httpapi.NewHandler(svcs.season, svcs.category, svcs.field, svcs.player, svcs.team, svcs.match, cfg.ReconcileWorkers, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if cfg.ReconcileEnabled {
		sched, err := scheduler.New(logger)
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("create scheduler: %w", err)
		}
		if err := scheduler.RegisterReconcileJob(sched, svcs.season, svcs.team, scheduler.ReconcileConfig{
			Interval: cfg.ReconcileInterval,
			Workers:  cfg.ReconcileWorkers,
		}); err != nil {
			_ = sched.Stop()
			_ = app.Close()
			return nil, fmt.Errorf("register reconcile job: %w", err)
		}
		app.Scheduler = sched
	} else {
		logger.Info("payment reconcile job disabled", "reason", "RECONCILE_ENABLED=false")
	}

	return app, nil
}

// Close releases storage handles. The scheduler is stopped by the caller
// together with the HTTP server.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func (a *App) openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		a.closers = append(a.closers, db.Close)

		seasons := postgres.NewSeasonRepository(db)
		repos = repositories{
			seasons:    seasons,
			divisions:  postgres.NewDivisionRepository(db),
			categories: postgres.NewCategoryRepository(db),
			fields:     postgres.NewFieldRepository(db),
			teams:      postgres.NewTeamRepository(db),
			players:    postgres.NewPlayerRepository(db),
			payments:   postgres.NewPaymentRepository(db),
			matches:    postgres.NewMatchRepository(db),
			referees:   postgres.NewRefereeRepository(db),
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver, "db_name", dbNameFromURL(cfg.DBURL))
	default:
		store, err := memory.NewStore(memory.SeedDataset())
		if err != nil {
			return repositories{}, fmt.Errorf("seed memory store: %w", err)
		}
		mem := store.Repositories()
		repos = repositories{
			seasons:    mem.Seasons,
			divisions:  mem.Divisions,
			categories: mem.Categories,
			fields:     mem.Fields,
			teams:      mem.Teams,
			players:    mem.Players,
			payments:   mem.Payments,
			matches:    mem.Matches,
			referees:   mem.Referees,
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver)
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.seasons = cachedrepo.NewSeasonRepository(repos.seasons, store)
		repos.divisions = cachedrepo.NewDivisionRepository(repos.divisions, store)
		repos.categories = cachedrepo.NewCategoryRepository(repos.categories, store)
		logger.Info("hierarchy read cache enabled", "ttl", cfg.CacheTTL.String())
	}

	return repos, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func newServices(cfg config.Config, repos repositories, logger *logging.Logger) (services, error) {
	ids := idgen.NewUUIDGenerator()
	phones := phone.NewNormalizer(cfg.PhoneRegion)

	fieldCatalog, err := catalog.NewFieldCatalog()
	if err != nil {
		return services{}, fmt.Errorf("load field catalog: %w", err)
	}

	var generator match.CalendarGenerator
	if cfg.CalendarConfigured() {
		generator = calendar.NewClient(calendar.ClientConfig{
			HTTPClient: &http.Client{
				Timeout:   cfg.CalendarTimeout,
				Transport: otelhttp.NewTransport(http.DefaultTransport),
			},
			BaseURL:    cfg.CalendarBaseURL,
			Token:      cfg.CalendarToken,
			Timeout:    cfg.CalendarTimeout,
			MaxRetries: cfg.CalendarMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.CalendarCircuitEnabled,
				FailureThreshold: cfg.CalendarCircuitFailureCount,
				OpenTimeout:      cfg.CalendarCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.CalendarCircuitHalfOpenMaxReq,
			},
		})
	} else {
		logger.Warn("calendar service not configured, calendar generation unavailable")
	}

	return services{
		season:   usecase.NewSeasonService(repos.seasons, repos.divisions, repos.categories, repos.referees, phones, ids, logger),
		category: usecase.NewCategoryService(repos.divisions, repos.categories, repos.teams, ids, logger),
		field:    usecase.NewFieldService(repos.fields, repos.matches, fieldCatalog, ids, logger),
		player:   usecase.NewPlayerService(repos.players, repos.teams, phones, ids, logger),
		team: usecase.NewTeamService(
			repos.seasons,
			repos.divisions,
			repos.categories,
			repos.teams,
			repos.players,
			repos.payments,
			repos.matches,
			phones,
			ids,
			logger,
		),
		match: usecase.NewMatchService(
			repos.seasons,
			repos.divisions,
			repos.categories,
			repos.teams,
			repos.matches,
			repos.referees,
			repos.fields,
			generator,
			ids,
			logger,
		),
	}, nil
}
