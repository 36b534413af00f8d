// Package server wires the doclife application together: storage, services,
// the reminder scheduler and the HTTP API, and manages their lifecycle.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/doclife/internal/logging"
	"github.com/dmitrijs2005/doclife/internal/server/config"
	"github.com/dmitrijs2005/doclife/internal/server/httpapi"
	"github.com/dmitrijs2005/doclife/internal/server/mail"
	"github.com/dmitrijs2005/doclife/internal/server/reminders"
	"github.com/dmitrijs2005/doclife/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/doclife/internal/server/services"
	"go.uber.org/multierr"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	store     repomanager.RepositoryManager
	scheduler *reminders.Scheduler
	server    *httpapi.HTTPServer
}

func NewApp(c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger, err := logging.New(c.LogFormat, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	store, err := repomanager.New(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if c.DatabaseDSN == "" {
		logger.Warn(context.Background(), "no database configured, using in-memory store")
	}

	us := services.NewUserService(store, c)
	ds := services.NewDocumentService(store)

	sender := mail.NewSMTPSSender(c.SMTPHost, c.SMTPPort, c.SenderEmail, c.SenderPassword)
	dispatcher := reminders.NewDispatcher(
		reminders.DispatcherConfig{From: c.SenderEmail, Enabled: c.MailConfigured()},
		sender,
		logger.With("module", "reminder_dispatcher"),
	)
	sweep := reminders.NewSweep(store, dispatcher, c.ReminderWindowDays, loc, logger.With("module", "reminder_sweep"))
	scheduler := reminders.NewScheduler(sweep, c.ReminderTime, loc, logger.With("module", "reminder_scheduler"))

	api := httpapi.NewAPI(us, ds, scheduler, httpapi.Options{
		SecretKey:      c.SecretKey,
		AllowedOrigins: c.AllowedOrigins,
		Location:       loc,
	}, logger)

	return &App{
		config:    c,
		logger:    logger,
		store:     store,
		scheduler: scheduler,
		server:    httpapi.NewHTTPServer(c.EndpointAddrHTTP, api.Routes(), logger),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run migrates the store, starts the reminder scheduler and serves HTTP
// until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	if err := app.store.RunMigrations(ctx); err != nil {
		return fmt.Errorf("db migration error: %w", err)
	}

	if err := app.scheduler.Start(); err != nil {
		return fmt.Errorf("scheduler start error: %w", err)
	}

	var wg sync.WaitGroup
	var serveErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			serveErr = err
			cancelFunc()
		}
	}()

	wg.Wait()

	return serveErr
}

// Close stops the scheduler, waiting for a running sweep within ctx, and
// releases the store.
func (app *App) Close(ctx context.Context) error {
	err := multierr.Combine(
		app.scheduler.Stop(ctx),
		app.store.Close(),
	)

	if z, ok := app.logger.(*logging.ZapLogger); ok {
		_ = z.Sync()
	}

	return err
}
