package reputation

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/amora-app/amora/internal/database"
	"github.com/amora-app/amora/internal/reputation"
	"github.com/amora-app/amora/internal/setup"
	"github.com/amora-app/amora/internal/worker/core"
	"github.com/amora-app/amora/pkg/utils"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Worker runs the nightly reputation sweep: it recomputes every eligible
// user's aggregated signals, resets the daily counters for the new day, and
// clears transient burst penalties.
type Worker struct {
	db          database.Client
	engine      *reputation.Engine
	reporter    *core.StatusReporter
	logger      *zap.Logger
	sweepHour   int
	timeout     time.Duration
	concurrency int
	chunkSize   int
}

// New creates a new reputation sweep worker.
func New(app *setup.App, logger *zap.Logger) *Worker {
	engine := reputation.NewEngine(app.DB, app.BurstClient, &app.Config.Common.Reputation, logger)
	reporter := core.NewStatusReporter(app.StatusClient, "reputation_sweep", logger)

	return &Worker{
		db:          app.DB,
		engine:      engine,
		reporter:    reporter,
		logger:      logger,
		sweepHour:   app.Config.Worker.SweepHourUTC,
		timeout:     time.Duration(app.Config.Worker.SweepTimeout) * time.Minute,
		concurrency: app.Config.Worker.SweepConcurrency,
		chunkSize:   app.Config.Worker.SweepChunkSize,
	}
}

// Start begins the sweep worker's main loop. Each iteration waits until the
// configured hour, then runs one full sweep under a hard wall-clock ceiling.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Reputation sweep worker started",
		zap.String("workerID", w.reporter.GetWorkerID()),
		zap.Int("sweepHourUTC", w.sweepHour))
	w.reporter.Start(ctx)

	defer w.reporter.Stop()

	for {
		if utils.ContextGuard(ctx) {
			w.logger.Info("Context cancelled, stopping sweep worker")
			return
		}

		w.reporter.SetHealthy(true)
		w.reporter.UpdateStatus("Waiting for next sweep", 0)

		next := utils.NextDailyRun(time.Now(), w.sweepHour)
		if utils.ContextSleepUntil(ctx, next, w.logger, "Context cancelled, stopping sweep worker") == utils.SleepCancelled {
			return
		}

		sweepCtx, cancel := context.WithTimeout(ctx, w.timeout)
		processed, failed := w.runSweep(sweepCtx)

		cancel()

		if failed > 0 {
			w.reporter.SetHealthy(false)
		}

		w.logger.Info("Nightly sweep finished",
			zap.Int64("processed", processed),
			zap.Int64("failed", failed))
	}
}

// runSweep pages through all eligible users in fixed-size chunks, fanning
// each chunk out over a bounded goroutine pool. A single user's failure is
// counted and the sweep continues.
func (w *Worker) runSweep(ctx context.Context) (int64, int64) {
	w.reporter.UpdateStatus("Sweeping users", 0)

	var processed, failed atomic.Int64

	var afterID uint64

	for {
		if utils.ContextGuard(ctx) {
			w.logger.Warn("Sweep stopped early",
				zap.Uint64("afterID", afterID),
				zap.Error(ctx.Err()))

			break
		}

		userIDs, err := w.db.Model().User().GetEligibleUserIDs(ctx, afterID, w.chunkSize)
		if err != nil {
			w.logger.Error("Failed to fetch user chunk", zap.Uint64("afterID", afterID), zap.Error(err))

			failed.Add(1)

			if !utils.ErrorSleep(ctx, 5*time.Second, w.logger, "sweep worker") {
				break
			}

			continue
		}

		if len(userIDs) == 0 {
			break
		}

		p := pool.New().WithMaxGoroutines(w.concurrency)
		for _, userID := range userIDs {
			p.Go(func() {
				if err := w.processUser(ctx, userID); err != nil {
					w.logger.Error("Failed to sweep user",
						zap.Uint64("userID", userID),
						zap.Error(err))
					failed.Add(1)

					return
				}

				processed.Add(1)
			})
		}

		p.Wait()

		afterID = userIDs[len(userIDs)-1]
	}

	return processed.Load(), failed.Load()
}

// processUser resets one user's daily state and recomputes their reputation
// from fresh signals.
func (w *Worker) processUser(ctx context.Context, userID uint64) error {
	if err := w.db.Model().Reputation().ResetDailyCounters(ctx, userID); err != nil {
		return err
	}

	if err := w.db.Model().Metrics().ResetDailyCounters(ctx, userID); err != nil {
		return err
	}

	if err := w.engine.Burst().ClearWindow(ctx, userID); err != nil {
		return err
	}

	_, err := w.engine.Recalculator().Recalculate(ctx, userID, nil)

	return err
}
