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

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/octobees/commtrack/api/internal/jobs"
	middlewarepkg "github.com/octobees/commtrack/api/internal/middleware"
	"github.com/octobees/commtrack/api/internal/router"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the notification scheduler",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		ctx := c.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		logger := a.logger
		cfg := a.cfg

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true

		e.Use(middlewarepkg.RequestID())
		e.Use(middlewarepkg.Logging(logger))
		e.Use(middlewarepkg.Metrics())
		e.Use(echoMiddleware.Recover())
		e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
			AllowOrigins:     []string{cfg.FrontendURL},
			AllowCredentials: true,
		}))

		router.Register(e, cfg, a.jwt, a.handlers())

		scheduler := jobs.NewScheduler(logger)
		if _, err := jobs.ScheduleNotificationRefresh(scheduler, cfg.NotificationSchedule, a.notifications, logger); err != nil {
			return fmt.Errorf("schedule notification refresh %q: %w", cfg.NotificationSchedule, err)
		}
		scheduler.Start()
		go jobs.RunRefresh(ctx, a.notifications, logger.WithPrefix("startup"))

		serverErr := make(chan error, 1)
		go func() {
			serverErr <- e.Start(":" + cfg.Port)
		}()
		logger.Info("http server listening", "port", cfg.Port)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("shutting down", "signal", sig.String())
		case err := <-serverErr:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "err", err)
		}
		scheduler.Shutdown(shutdownCtx)
		return nil
	},
}
