package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amora-app/amora/internal/setup"
	"github.com/amora-app/amora/internal/setup/telemetry"
	workerRep "github.com/amora-app/amora/internal/worker/reputation"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// WorkerLogDir specifies where worker log files are stored.
const WorkerLogDir = "logs/worker_logs"

func main() {
	cmd := &cli.Command{
		Name:  "worker",
		Usage: "Start the Amora background workers",
		Commands: []*cli.Command{
			{
				Name:  "sweep",
				Usage: "Start the nightly reputation sweep worker",
				Action: func(ctx context.Context, _ *cli.Command) error {
					return runSweepWorker(ctx)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func runSweepWorker(ctx context.Context) error {
	app, err := setup.InitializeApp(ctx, telemetry.ServiceWorker, WorkerLogDir)
	if err != nil {
		return err
	}
	defer app.Cleanup(ctx)

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := app.LogManager.GetWorkerLogger("reputation_sweep")
	worker := workerRep.New(app, logger)

	runWorker(ctx, worker, logger)

	return nil
}

// runWorker runs a single worker in a loop with panic recovery.
func runWorker(ctx context.Context, w interface{ Start(context.Context) }, logger *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("Context cancelled, stopping worker")
			return
		default:
			func() {
				defer func() {
					if r := recover(); r != nil {
						logger.Error("Worker execution failed",
							zap.String("worker_type", fmt.Sprintf("%T", w)),
							zap.Any("panic", r),
						)
						logger.Info("Restarting worker in 5 seconds...")
						time.Sleep(5 * time.Second)
					}
				}()

				logger.Info("Starting worker")
				w.Start(ctx)
			}()
		}
	}
}
