package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	domrepo "InvestGuide/internal/domain/repository"
	"InvestGuide/internal/handler/api"
	"InvestGuide/pkg/cache"
	"InvestGuide/pkg/config"
	xhttp "InvestGuide/pkg/http"
	applogger "InvestGuide/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	advisorH   *api.AdvisorEchoHandler
	planningH  *api.PlanningEchoHandler
	publisher  domrepo.Publisher
	archiver   domrepo.Archiver
	store      cache.Service
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	advisorH *api.AdvisorEchoHandler,
	planningH *api.PlanningEchoHandler,
	publisher domrepo.Publisher,
	archiver domrepo.Archiver,
	store cache.Service,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		advisorH:  advisorH,
		planningH: planningH,
		publisher: publisher,
		archiver:  archiver,
		store:     store,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}

	a.httpServer = xhttp.NewServer(
		[]xhttp.Handler{a.advisorH, a.planningH},
		xhttp.WithHost(a.cfg.Server.Host),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("advisory service started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("env", a.cfg.Environment),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.archiver != nil {
		if err := a.archiver.Close(); err != nil {
			a.logger.Warn("archiver close error", applogger.Error(err))
		}
	}
	if closer, ok := a.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			a.logger.Warn("session store close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
