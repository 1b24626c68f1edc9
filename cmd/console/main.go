// cmd/console/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	appcfg "canteen/internal/infra/config"
	"canteen/internal/infra/logging"
	"canteen/internal/platform/di"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		logrus.WithError(err).Fatal("[boot] config")
	}

	opts := logging.Options{
		Level:   cfg.LogLevel,
		Service: "canteen-console",
		Env:     cfg.AppEnv,
		Text:    !cfg.IsProduction() && os.Getenv("LOG_FORMAT") == "text",
	}
	logger := logging.Base(logging.New(opts), opts)

	ctx := context.Background()
	cont, err := di.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("[boot] container")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           cont.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigs
		logger.WithField("signal", sig.String()).Info("[boot] shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("[boot] server shutdown")
		}
		// after the server so in-flight requests can still notify
		if err := cont.Close(); err != nil {
			logger.WithError(err).Warn("[boot] container close")
		}
		close(idleConnsClosed)
	}()

	logger.WithFields(logrus.Fields{
		"port":   cfg.Port,
		"driver": cfg.StoreDriver,
		"auth":   cfg.AuthEnabled,
	}).Info("[boot] listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Fatal("[boot] server")
	}
	<-idleConnsClosed
}
