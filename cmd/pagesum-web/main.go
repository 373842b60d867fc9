// Command pagesum-web serves a single-page form for summarizing a page range
// of an uploaded PDF.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/nevindra/pagesum/internal/app"
	"github.com/nevindra/pagesum/internal/config"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := cfg.Logger()

	ctx, stop := app.SignalContext()
	defer stop()

	a, err := app.New(ctx, &cfg, logger)
	if err != nil {
		logger.Error("init", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newHandler(a, int64(cfg.Server.MaxUploadMB)<<20, logger).routes(),
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logger.Warn("shutdown", "error", err)
	}
	if err := a.Close(shutCtx); err != nil {
		logger.Warn("observer shutdown", "error", err)
	}
	logger.Info("stopped")
}
