// Package app wires the delegation mapping, the platform driver, the
// command pipeline and the ops HTTP surface into one runnable application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/solarroleplay/rolewarden/internal/rolewarden/domain"
	"github.com/solarroleplay/rolewarden/internal/rolewarden/ops"
	"github.com/solarroleplay/rolewarden/internal/rolewarden/platform/discord"
	"github.com/solarroleplay/rolewarden/internal/rolewarden/service"
	"github.com/solarroleplay/rolewarden/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the bot with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	delegations *domain.DelegationMap
	session     *discord.Session

	handler  *service.Handler
	reporter *service.ReporterService

	opsServer *http.Server
}

// New initializes every dependency. A delegation document that fails to
// load aborts startup: the process never accepts commands with a mapping it
// could not fully read.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "rolewarden",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	delegations, err := domain.LoadDelegations(cfg.DelegationsFile)
	if err != nil {
		return nil, err
	}
	app.delegations = delegations
	app.logger.Info("delegation mapping loaded",
		"file", cfg.DelegationsFile, "grantor_roles", delegations.Len())

	session, err := discord.New(discord.Config{
		Token:        cfg.BotToken,
		AppID:        cfg.AppID,
		GuildID:      cfg.GuildID,
		MessageRate:  rate.Limit(cfg.MessagesPerSecond),
		MessageBurst: cfg.MessageBurst,
	}, app.logger)
	if err != nil {
		return nil, err
	}
	app.session = session

	app.initServices()
	app.initOps()

	session.BindInteractions(app.handler)
	session.BindLifecycleAudit(cfg.AuditChannelID)

	return app, nil
}

func (app *Application) initServices() {
	app.reporter = &service.ReporterService{
		Messenger:    app.session,
		AuditChannel: app.cfg.AuditChannelID,
	}
	app.handler = &service.Handler{
		Authorizer: &service.AuthorizeService{Delegations: app.delegations},
		Executor:   &service.ExecutorService{Membership: app.session},
		Notifier: &service.NotifierService{
			Messenger:    app.session,
			AuditChannel: app.cfg.AuditChannelID,
		},
		Reporter: app.reporter,
	}
}

func (app *Application) initOps() {
	router := ops.NewRouter(BuildVersion, app.logger, app.session.Ready)
	app.opsServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.OpsPort),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// Run opens the gateway, registers the command schema, serves the ops
// endpoints and blocks until shutdown is requested.
func (app *Application) Run() error {
	if err := app.session.Open(); err != nil {
		return err
	}

	// A failed registration is reported, not fatal: commands registered by
	// a previous run keep working.
	regCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	if err := app.session.RegisterCommands(regCtx); err != nil {
		app.logger.Error("command registration failed", "error", err)
		app.reporter.Report(regCtx, "command registration", err)
	}
	cancel()

	app.logger.Info("rolewarden started",
		"guild", app.cfg.GuildID, "ops_port", app.cfg.OpsPort, "version", BuildVersion)

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		if err := app.opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("ops server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		select {
		case sig := <-shutdown:
			app.logger.Info("shutdown signal received", "signal", sig.String())
		case <-ctx.Done():
		}
		return app.Shutdown()
	})

	return g.Wait()
}

// Shutdown closes the ops server within the grace period, then the gateway
// session.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down rolewarden...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.opsServer.Shutdown(ctx); err != nil {
		app.logger.Error("graceful ops server shutdown failed", "error", err)
		if err := app.opsServer.Close(); err != nil {
			app.logger.Error("error closing ops server", "error", err)
		}
	}

	if err := app.session.Close(); err != nil {
		app.logger.Error("error closing gateway session", "error", err)
		return err
	}

	app.logger.Info("rolewarden stopped")
	return nil
}
