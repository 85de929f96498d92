// Package server initializes and runs the simpledb server: it opens the
// database (with startup retries), applies migrations, wires the services and
// the HTTP endpoint, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/avolkov3/simpledb/internal/logging"
	"github.com/avolkov3/simpledb/internal/server/config"
	"github.com/avolkov3/simpledb/internal/server/httpserver"
	"github.com/avolkov3/simpledb/internal/server/mail"
	"github.com/avolkov3/simpledb/internal/server/repositories/repomanager"
	"github.com/avolkov3/simpledb/internal/server/services"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	userService  *services.UserService
	entryService *services.EntryService
}

// connectAttempts bounds the startup database retry loop.
const connectAttempts = 10

// openDB opens the pool and pings it with fibonacci backoff, so the server
// survives the database coming up slightly later than it does.
func openDB(ctx context.Context, logger logging.Logger, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	backoff := retry.WithMaxRetries(connectAttempts, retry.NewFibonacci(time.Second))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			logger.Warn(ctx, "database not ready, retrying", "error", err.Error())
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return db, nil
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	handler := slog.NewJSONHandler(os.Stdout, nil)
	logger := logging.NewSlogLogger(slog.New(handler))

	if cfg.SecretKey == "" {
		return nil, errors.New("secret key is not configured")
	}

	db, err := openDB(ctx, logger, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	sender := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)

	us := services.NewUserService(db, rm, sender, logger, cfg)
	es := services.NewEntryService(db, rm, logger, cfg)

	return &App{
		config:       cfg,
		logger:       logger,
		db:           db,
		userService:  us,
		entryService: es,
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	h := httpserver.NewHandlers(app.userService, app.entryService, app.logger)
	router := httpserver.NewRouter(h, app.logger, app.config.CORSAllowedOrigins)
	s := httpserver.NewServer(app.config.EndpointAddr, router, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err.Error())
	}
}
