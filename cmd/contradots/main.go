package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/mirukibs/contradots/internal/chain"
	"github.com/mirukibs/contradots/internal/config"
	"github.com/mirukibs/contradots/internal/domain"
	"github.com/mirukibs/contradots/internal/events"
	"github.com/mirukibs/contradots/internal/infra/database"
	"github.com/mirukibs/contradots/internal/infra/repository"
	"github.com/mirukibs/contradots/internal/present/rest"
	"github.com/mirukibs/contradots/internal/present/rest/middleware"
	"github.com/mirukibs/contradots/internal/projection"
	"github.com/mirukibs/contradots/internal/service"
	"github.com/mirukibs/contradots/internal/tracing"
	"github.com/mirukibs/contradots/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config",
			slog.String("error", err.Error()),
			slog.String("module", "main"),
		)
		os.Exit(1)
	}

	ctx := context.Background()

	if cfg.Server.EnableTrace {
		shutdown, err := tracing.Setup(ctx, "contradots", cfg.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to set up tracing",
				slog.String("error", err.Error()),
				slog.String("module", "main"),
			)
			os.Exit(1)
		}
		defer shutdown(ctx)
	}

	db, err := database.NewPostgres(cfg.Server.PostgresDsn)
	if err != nil {
		slog.Error("failed to connect database",
			slog.String("error", err.Error()),
			slog.String("module", "main"),
		)
		os.Exit(1)
	}
	if err := database.MigratePostgres(db); err != nil {
		slog.Error("failed to migrate database",
			slog.String("error", err.Error()),
			slog.String("module", "main"),
		)
		os.Exit(1)
	}

	rdb := database.NewRedis(cfg.Server.RedisAddr, "", cfg.Server.RedisDB)
	mc := database.NewMemcached(cfg.Server.MemcachedAddr)

	actionRepo := repository.NewActionRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	personRepo := repository.NewPersonRepository(db)
	eventLog := repository.NewEventLogRepository(db)
	leaderboard := repository.NewLeaderboardRepository(rdb, db)
	stats := repository.NewActivityStatsRepository(db, mc)
	tokens := repository.NewTokenRepository(db)

	var mirror usecase.ChainMirror
	if cfg.Chain.Enabled {
		m, err := chain.NewMirror(chain.Config{
			RPCEndpoint:     cfg.Chain.RPCEndpoint,
			ChainID:         cfg.Chain.ChainID,
			PrivateKey:      cfg.Chain.PrivateKey,
			ContractAddress: cfg.Chain.ContractAddress,
		})
		if err != nil {
			slog.Error("failed to set up chain mirror",
				slog.String("error", err.Error()),
				slog.String("module", "main"),
			)
			os.Exit(1)
		}
		mirror = m
	}

	reputation := domain.NewReputationService()
	signal := service.NewSignalService(rdb)

	publisher := events.NewInMemoryPublisher().WithLog(eventLog)

	// The reputation handler registers before the leaderboard handler so
	// rank updates read the post-award score.
	reputationHandler := service.NewReputationEventHandler(personRepo, activityRepo, reputation)
	leaderboardHandler := projection.NewLeaderboardHandler(personRepo, leaderboard, signal)
	statsHandler := projection.NewActivityStatsHandler(stats)

	for _, eventType := range []string{domain.EventTypeActionSubmitted, domain.EventTypeProofValidated} {
		publisher.Register(eventType, reputationHandler)
		publisher.Register(eventType, leaderboardHandler)
	}
	publisher.Register(domain.EventTypeActionSubmitted, statsHandler)

	actionUC := usecase.NewActionUsecase(actionRepo, activityRepo, personRepo, publisher, mirror)
	activityUC := usecase.NewActivityUsecase(activityRepo, actionRepo, personRepo, stats, reputation, mirror)
	personUC := usecase.NewPersonUsecase(personRepo, actionRepo, leaderboard, tokens, reputation)

	auth := service.NewAuthService(tokens, personRepo)
	authMiddleware := middleware.NewAuthMiddleware(auth)

	e := echo.New()
	e.HideBanner = true
	if cfg.Server.EnableTrace {
		e.Use(otelecho.Middleware("contradots"))
	}
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(authMiddleware.IdentifyIdentity)

	handler := rest.NewHandler(actionUC, activityUC, personUC, signal)
	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(cfg.Server.Bind))
}
