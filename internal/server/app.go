package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gymdash/internal/backend"
	"gymdash/internal/config"
	"gymdash/internal/history"
	"gymdash/internal/localstore"
	"gymdash/internal/logging"
	"gymdash/internal/planner"

	_ "modernc.org/sqlite"
)

// App owns the wired-up dashboard service and its lifecycle.
type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB // nil when the file driver backs the cache
	generator planner.Generator
	httpSrv   *http.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var (
		db    *sql.DB
		store history.Store
		err   error
	)
	switch cfg.StorageDriver {
	case config.StorageDriverSQLite:
		db, err = localstore.InitDatabase(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("local cache init error: %w", err)
		}
		store = localstore.NewSQLiteStore(db)
	case config.StorageDriverFile:
		store, err = localstore.NewFileStore(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("local cache init error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	bc := backend.New(cfg.BackendBaseURL, cfg.BackendToken, cfg.RequestTimeout, logger)

	diet := history.NewService(history.KindDiet, store, backend.NewPlanSource(bc, history.KindDiet), logger)
	workout := history.NewService(history.KindWorkout, store, backend.NewPlanSource(bc, history.KindWorkout), logger)

	var gen planner.Generator
	if cfg.GeminiAPIKey != "" {
		gen, err = planner.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			if db != nil {
				db.Close()
			}
			return nil, fmt.Errorf("generator init error: %w", err)
		}
	} else {
		logger.Warn(ctx, "no Gemini API key configured, plan generation disabled")
	}

	srv := New(diet, workout, bc, gen, logger)

	return &App{
		config:    cfg,
		logger:    logger,
		db:        db,
		generator: gen,
		httpSrv:   &http.Server{Addr: cfg.ListenAddr, Handler: srv.Handler()},
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the dashboard API until ctx is cancelled or a termination
// signal arrives, then shuts down gracefully.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := app.httpSrv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "http shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "dashboard listening", "addr", app.config.ListenAddr)

	err := app.httpSrv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if app.generator != nil {
		if err := app.generator.Close(); err != nil {
			app.logger.Error(ctx, "generator close error", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}
	return nil
}
