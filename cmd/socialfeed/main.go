package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"socialfeed/internal/api"
	"socialfeed/internal/auth"
	"socialfeed/internal/clock"
	"socialfeed/internal/config"
	"socialfeed/internal/database"
	"socialfeed/internal/logging"
	"socialfeed/internal/metrics"
	"socialfeed/internal/social"
	"socialfeed/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger, closer, err := logging.Stdout(cfg.Logging)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialise logger")
	}

	os.Exit(serve(cfg, logger, closer))
}

// serve runs the server and returns the process exit code. closer is
// always closed before returning so buffered log shipping is flushed.
func serve(cfg *config.Config, logger *logrus.Logger, closer io.Closer) int {
	defer closer.Close()

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Error("Server stopped")
		return 1
	}
	return 0
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	tokens, err := auth.NewTokenManager(cfg.Security)
	if err != nil {
		return err
	}
	sessionStore := auth.NewSessionStore(cfg.Security)
	s := store.New(db, clock.NewRealClock())

	handlers := api.New(api.Deps{
		Accounts:      social.NewAccounts(s, tokens, cfg.Security.BcryptCost),
		Relationships: social.NewRelationships(s),
		Engagement:    social.NewEngagement(s),
		Feed:          social.NewFeedComposer(s),
		Notifications: social.NewNotifications(s),
		Posts:         social.NewPosts(s),
		Sessions:      sessionStore,
		Metrics:       metrics.New(prometheus.DefaultRegisterer),
		Logger:        logger,
		Pages:         cfg.API,
	})
	authn := auth.NewAuthenticator(tokens, sessionStore, logger)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handlers.Router(authn, prometheus.DefaultGatherer),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
