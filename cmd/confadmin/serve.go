package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"confadmin/config"
	"confadmin/internal/adapters/auth"
	httpdelivery "confadmin/internal/delivery/http"
	"confadmin/internal/delivery/http/controllers"
	"confadmin/internal/services"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the admin API",
	Long: `Start the admin HTTP API.

The server loads every conference from the backend, then serves the admin
endpoints, /metrics, /healthz and /swagger/ on PORT. It runs until
interrupted (Ctrl+C) or it receives SIGTERM.

A failed initial load is logged and the server starts with an empty list;
POST /conferences/sync retries it.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "port to listen on (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}
	logger := config.NewLogger()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conferenceBackend, err := newBackend(cfg, logger)
	if err != nil {
		return err
	}
	journal, closeJournal, err := newJournal(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeJournal()
	notifier, err := newNotifier(cfg, logger)
	if err != nil {
		return err
	}

	store := services.NewConferenceStore(conferenceBackend, services.ConferenceStoreOptions{
		Journal:  journal,
		Notifier: notifier,
		Logger:   logger,
		Timeout:  cfg.BackendTimeout,
	})
	if _, err := store.GetAllConferences(ctx); err != nil {
		logger.Error("initial conference load failed", "err", err)
	}

	if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		logger.Warn("ADMIN_EMAIL or ADMIN_PASSWORD_HASH not set, login is disabled")
	}
	authService := services.NewAuthService(
		cfg.AdminEmail,
		cfg.AdminPasswordHash,
		auth.NewBcryptHasher(bcrypt.DefaultCost),
		auth.NewJWTIssuer(cfg.JWTSecret),
		cfg.JWTExpiry,
	)

	router := httpdelivery.NewRouter(httpdelivery.RouterConfig{
		Logger:         logger,
		Conferences:    controllers.NewConferenceController(logger, store),
		Journal:        controllers.NewJournalController(logger, journal),
		Auth:           controllers.NewAuthController(logger, authService),
		Verifier:       auth.NewJWTVerifier(cfg.JWTSecret),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.Port, "backend", cfg.BackendURL, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown timed out", "timeout", shutdownTimeout.String(), "err", err)
		return nil
	}
	logger.Info("shutdown complete")
	return nil
}
