package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amora-app/amora/internal/reputation"
	"github.com/amora-app/amora/internal/rest"
	"github.com/amora-app/amora/internal/setup"
	"github.com/amora-app/amora/internal/setup/telemetry"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// APILogDir specifies where API server log files are stored.
const APILogDir = "logs/api_logs"

// Server timeouts.
const (
	ReadTimeout     = 5 * time.Second
	WriteTimeout    = 10 * time.Second
	ShutdownTimeout = 30 * time.Second
)

func main() {
	cmd := &cli.Command{
		Name:  "api",
		Usage: "Start the Amora REST API server",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return serve(ctx)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	// Initialize application with required dependencies
	app, err := setup.InitializeApp(ctx, telemetry.ServiceAPI, APILogDir)
	if err != nil {
		return err
	}
	defer app.Cleanup(ctx)

	// Wire the reputation engine and REST server
	engine := reputation.NewEngine(app.DB, app.BurstClient, &app.Config.Common.Reputation, app.Logger)
	handler := rest.NewServer(app.DB, engine, app.Logger, &app.Config.API)

	srv := &http.Server{
		Addr:         app.Config.API.ListenAddr,
		Handler:      handler,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		app.Logger.Info("REST server started", zap.String("addr", srv.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Logger.Error("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	app.Logger.Info("Shutting down REST server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	app.Logger.Info("Server gracefully stopped")

	return nil
}
