package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"

	"github.com/smarteck4/cricket-auction-pro/internal/config"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/auction"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/bid"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/delivery"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/innings"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/match"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/owner"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/player"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/roster"
	"github.com/smarteck4/cricket-auction-pro/internal/infrastructure/account"
	"github.com/smarteck4/cricket-auction-pro/internal/infrastructure/repository/memory"
	"github.com/smarteck4/cricket-auction-pro/internal/infrastructure/repository/postgres"
	"github.com/smarteck4/cricket-auction-pro/internal/interfaces/httpapi"
	"github.com/smarteck4/cricket-auction-pro/internal/interfaces/livefeed"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/cache"
	idgen "github.com/smarteck4/cricket-auction-pro/internal/platform/id"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/logging"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/resilience"
	"github.com/smarteck4/cricket-auction-pro/internal/usecase"
)

const settlementPoolSize = 4

// App bundles the long-running pieces main has to drive: the HTTP server,
// the live feed hub, and the auction timekeeper.
type App struct {
	Server     *http.Server
	Hub        *livefeed.Hub
	Timekeeper *usecase.Timekeeper

	db   *sqlx.DB
	pool *ants.Pool
}

type repositories struct {
	auction  auction.Repository
	player   player.Repository
	owner    owner.Repository
	roster   roster.Repository
	bid      bid.Repository
	match    match.Repository
	innings  innings.Repository
	delivery delivery.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	app := &App{}

	repos, err := app.buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore(cfg.CacheTTL)
	}

	rules := auction.Rules{
		IncrementFloor:           cfg.AuctionIncrementFloor,
		DefaultTimerSeconds:      cfg.AuctionTimerSeconds,
		ReferencePriceByCategory: cfg.AuctionReferencePrices,
		MinByCategory:            cfg.AuctionCategoryMinimums,
	}

	idGen := idgen.NewRandomGenerator()
	clock := clockwork.NewRealClock()

	auctionSvc := usecase.NewAuctionService(
		repos.auction,
		repos.player,
		repos.owner,
		repos.roster,
		repos.bid,
		rules,
		idGen,
		clock,
		nil,
		cacheStore,
		logger,
	)
	scoringSvc := usecase.NewScoringService(
		repos.match,
		repos.innings,
		repos.delivery,
		repos.player,
		idGen,
		nil,
		logger,
	)

	hub := livefeed.NewHub(logger, func(ctx context.Context) (any, error) {
		return auctionSvc.Snapshot(ctx)
	})
	auctionSvc.SetPublisher(hub)
	scoringSvc.SetPublisher(hub)
	app.Hub = hub

	playerSvc := usecase.NewPlayerService(repos.player, idGen)
	ownerSvc := usecase.NewOwnerService(repos.owner, repos.roster, repos.player, idGen, cacheStore)
	matchSvc := usecase.NewMatchService(repos.match, repos.innings, repos.owner, idGen)
	matchSvc.SetDefaultMaxOvers(cfg.MatchMaxOvers)

	pool, err := ants.NewPool(settlementPoolSize)
	if err != nil {
		app.closeOnBuildError()
		return nil, fmt.Errorf("create settlement pool: %w", err)
	}
	app.pool = pool

	timekeeper := usecase.NewTimekeeper(auctionSvc, clock, pool, logger)
	auctionSvc.SetWaker(timekeeper)
	app.Timekeeper = timekeeper

	verifier := account.NewClient(account.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.AccountTimeout},
		BaseURL:        cfg.AccountBaseURL,
		IntrospectPath: cfg.AccountIntrospectPath,
		AdminKey:       cfg.AccountAdminKey,
		Timeout:        cfg.AccountTimeout,
		Logger:         logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AccountCircuitEnabled,
			FailureThreshold: cfg.AccountCircuitFailureCount,
			OpenTimeout:      cfg.AccountCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AccountCircuitHalfOpenMaxReq,
		},
	})

	handler := httpapi.NewHandler(auctionSvc, scoringSvc, playerSvc, ownerSvc, matchSvc, logger)
	router := httpapi.NewRouter(handler, hub, verifier, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		app.closeOnBuildError()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	app.Server = server

	return app, nil
}

// buildRepositories picks Postgres when DB_URL is set and falls back to the
// seeded in-memory store otherwise.
func (a *App) buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("using in-memory repositories", "reason", "DB_URL empty")

		playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
		return repositories{
			auction:  memory.NewAuctionRepository(memory.SeedAuctionState()),
			player:   playerRepo,
			owner:    memory.NewOwnerRepository(memory.SeedOwners()),
			roster:   memory.NewRosterRepository(playerRepo),
			bid:      memory.NewBidRepository(),
			match:    memory.NewMatchRepository(),
			innings:  memory.NewInningsRepository(),
			delivery: memory.NewDeliveryRepository(),
		}, nil
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}
	a.db = db

	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		a.closeOnBuildError()
		return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
	}

	logger.Info("using postgres repositories", "database", dbNameFromURL(cfg.DBURL))

	return repositories{
		auction:  postgres.NewAuctionRepository(db),
		player:   postgres.NewPlayerRepository(db),
		owner:    postgres.NewOwnerRepository(db),
		roster:   postgres.NewRosterRepository(db),
		bid:      postgres.NewBidRepository(db),
		match:    postgres.NewMatchRepository(db),
		innings:  postgres.NewInningsRepository(db),
		delivery: postgres.NewDeliveryRepository(db),
	}, nil
}

func (a *App) closeOnBuildError() {
	_ = a.Close()
}

// Close releases the worker pool and the database handle. The HTTP server
// is shut down by main before Close runs.
func (a *App) Close() error {
	if a.pool != nil {
		a.pool.Release()
		a.pool = nil
	}
	if a.db != nil {
		err := a.db.Close()
		a.db = nil
		return err
	}
	return nil
}
