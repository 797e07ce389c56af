package app

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	httpctrl "github.com/Bakuzaci/payattention-sol/internal/adapter/controller/http"
	"github.com/Bakuzaci/payattention-sol/internal/adapter/gateway/coingecko"
	pgrepo "github.com/Bakuzaci/payattention-sol/internal/adapter/gateway/postgres"
	"github.com/Bakuzaci/payattention-sol/internal/config"
	httpinfra "github.com/Bakuzaci/payattention-sol/internal/infra/http"
	"github.com/Bakuzaci/payattention-sol/internal/infra/scheduler"
	"github.com/Bakuzaci/payattention-sol/internal/infra/store"
	"github.com/Bakuzaci/payattention-sol/internal/observability"
	"github.com/Bakuzaci/payattention-sol/internal/pkg/pace"
	syncuc "github.com/Bakuzaci/payattention-sol/internal/usecase/sync"
)

// App owns the wired components and their lifecycle.
type App struct {
	Router *gin.Engine

	cfg   config.Config
	db    *sql.DB
	sched *scheduler.AutoSync
	log   *slog.Logger
}

func Build(log *slog.Logger) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := store.OpenPostgres(cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.EnsureSchema(initCtx, db); err != nil {
		db.Close()
		return nil, err
	}

	gecko := coingecko.New()
	if cfg.CoinGeckoBaseURL != "" {
		gecko = coingecko.NewWithBaseURL(cfg.CoinGeckoBaseURL)
	}
	gecko.SetTimeout(cfg.HTTPTimeout)

	repo := pgrepo.NewTokensRepo(db)
	rec := &syncuc.Reconciler{
		Repo:         repo,
		Fetcher:      gecko,
		Pace:         pace.NewInterval(cfg.MinRequestGap),
		ListingLimit: cfg.ListingLimit,
		SocialLimit:  cfg.SocialLimit,
		Logger:       log,
	}

	router := httpinfra.NewRouter()
	httpctrl.RootController{}.Register(router)
	httpctrl.NewHealthController(db, config.NewBuildInfo()).Register(router)
	httpctrl.NewCategoriesController(repo).Register(router)
	httpctrl.NewTokensController(repo).Register(router)
	httpctrl.NewSyncController(rec).Register(router)
	router.GET("/metrics", gin.WrapH(observability.Handler()))

	return &App{
		Router: router,
		cfg:    cfg,
		db:     db,
		log:    log,
		sched: &scheduler.AutoSync{
			Sync:         rec,
			Interval:     cfg.SyncInterval,
			InitialDelay: cfg.InitialSyncDelay,
			Timeout:      cfg.SyncTimeout,
			Logger:       log,
		},
	}, nil
}

// Run starts the background sync and serves HTTP until the listener fails.
func (a *App) Run(ctx context.Context) error {
	if err := a.sched.Start(ctx); err != nil {
		return err
	}
	a.log.Info("listening", "port", a.cfg.Port)
	return a.Router.Run(":" + a.cfg.Port)
}

func (a *App) Close() {
	a.sched.Stop()
	if err := a.db.Close(); err != nil {
		a.log.Warn("db close", "err", err)
	}
}
