package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/garrett-1/portfolio/internal/config"
	"github.com/garrett-1/portfolio/internal/logging"
	"github.com/garrett-1/portfolio/internal/metrics"
	"github.com/garrett-1/portfolio/internal/session"
	"github.com/garrett-1/portfolio/internal/web"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))

	content, err := loadContent(cmd, cfg.ContentPath)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	m := metrics.New()

	store, err := session.NewStore(content.Experiences, cfg.CarouselWindow, cfg.SessionTTL,
		session.WithLimit(cfg.SessionLimit), session.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create session store: %w", err)
	}
	m.RegisterSessions(store.Len)

	srv, err := web.New(content, store, web.Options{
		BasePath:       cfg.BasePath,
		RevealInterval: cfg.RevealInterval,
		ResumePath:     cfg.ResumePath,
		Logger:         logger,
		Metrics:        m,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go store.Run(ctx, cfg.SessionSweep)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", httpSrv.Addr, "base_path", cfg.BasePath)
		serverErrors <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
		if err := httpSrv.Close(); err != nil {
			return fmt.Errorf("close server: %w", err)
		}
	}
	logger.Info("server stopped")
	return nil
}
