package app

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fourfold/fourfold/internal/config"
	"github.com/fourfold/fourfold/internal/database"
	"github.com/fourfold/fourfold/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Application wires configuration, database, router, scheduler, and
// server lifecycle.
type Application struct {
	cfg       config.Application
	router    *mux.Router
	srv       *http.Server
	scheduler *Scheduler
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	// DB + migrations
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps := BuildDependencies(db, cfg)

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	// Frontend
	if cfg.Frontend.Enabled {
		frontend := rest.NewFrontendHandler(cfg.Frontend.Dir, "index.html")
		r.PathPrefix("/").Handler(frontend)
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         ":8080",
		WriteTimeout: 90 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var scheduler *Scheduler
	if cfg.Scheduler.Enabled {
		scheduler = NewScheduler(deps.ExpenseService, deps.Clock)
		if err := scheduler.Register(cfg.Scheduler.CarryForwardCron); err != nil {
			return nil, err
		}
	}

	return &Application{cfg: cfg, router: r, srv: srv, scheduler: scheduler}, nil
}

// Run starts the HTTP server and the scheduler and blocks until shutdown.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.scheduler != nil {
		a.scheduler.Start()
		defer a.scheduler.Stop()
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("Starting server on %s", a.srv.Addr)
		if err := a.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return a.srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
