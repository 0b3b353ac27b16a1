package reputation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/amora-app/amora/internal/database"
	"github.com/amora-app/amora/internal/setup/config"
	"github.com/google/uuid"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

const (
	// burstKeyPrefix namespaces the per-sender timestamp windows.
	burstKeyPrefix = "burst:"

	// burstRetentionSlack bounds the stored window at maxMessages + slack
	// entries so the sorted set never grows without limit.
	burstRetentionSlack = 5

	// MaxBurstScore is the penalty applied when a burst is detected.
	MaxBurstScore = 1.0
)

// BurstDetector keeps a sliding window of recent send timestamps per sender
// in Redis. When the window fills past the threshold it applies the maximum
// burst penalty and recalculates the sender's reputation immediately.
type BurstDetector struct {
	client       rueidis.Client
	reputation   reputationStore
	recalculator recalculationRunner
	window       time.Duration
	maxMessages  int
	logger       *zap.Logger
}

// NewBurstDetector creates a new burst detector.
func NewBurstDetector(
	client rueidis.Client, db database.Client, recalculator *Recalculator,
	cfg *config.Reputation, logger *zap.Logger,
) *BurstDetector {
	return &BurstDetector{
		client:       client,
		reputation:   db.Model().Reputation(),
		recalculator: recalculator,
		window:       time.Duration(cfg.BurstWindowMS) * time.Millisecond,
		maxMessages:  cfg.BurstMaxMessages,
		logger:       logger.Named("burst"),
	}
}

// RecordSend registers one send for the sender and reports whether it
// tripped burst detection. On detection the sender's burst penalty is
// persisted and a real-time recalculation runs before returning, so the
// sender's very next permission check already sees the downgraded tier.
func (d *BurstDetector) RecordSend(ctx context.Context, senderID uint64) (bool, error) {
	key := fmt.Sprintf("%s%d", burstKeyPrefix, senderID)
	now := time.Now().UnixMilli()
	cutoff := now - d.window.Milliseconds()

	// Age out old entries, record this send, and trim the retained window.
	cmds := []rueidis.Completed{
		d.client.B().Zremrangebyscore().Key(key).
			Min("-inf").Max(strconv.FormatInt(cutoff, 10)).Build(),
		d.client.B().Zadd().Key(key).ScoreMember().
			ScoreMember(float64(now), uuid.NewString()).Build(),
		d.client.B().Zremrangebyrank().Key(key).
			Start(0).Stop(int64(-(d.maxMessages + burstRetentionSlack + 1))).Build(),
		d.client.B().Pexpire().Key(key).
			Milliseconds(2 * d.window.Milliseconds()).Build(),
	}
	for _, resp := range d.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return false, fmt.Errorf("failed to update burst window: %w", err)
		}
	}

	count, err := d.client.Do(ctx, d.client.B().Zcard().Key(key).Build()).AsInt64()
	if err != nil {
		return false, fmt.Errorf("failed to read burst window size: %w", err)
	}

	if count <= int64(d.maxMessages) {
		return false, nil
	}

	d.logger.Warn("Burst detected",
		zap.Uint64("senderID", senderID),
		zap.Int64("sendsInWindow", count),
		zap.Duration("window", d.window))

	if err := d.reputation.SetBurstScore(ctx, senderID, MaxBurstScore); err != nil {
		return true, fmt.Errorf("failed to persist burst score: %w", err)
	}

	burstScore := MaxBurstScore
	if _, err := d.recalculator.Recalculate(ctx, senderID, &Overrides{BurstScore: &burstScore}); err != nil {
		return true, fmt.Errorf("failed to recalculate after burst: %w", err)
	}

	return true, nil
}

// ClearWindow removes the sender's stored timestamp window. Used by the
// nightly sweep alongside the burst-score reset.
func (d *BurstDetector) ClearWindow(ctx context.Context, senderID uint64) error {
	key := fmt.Sprintf("%s%d", burstKeyPrefix, senderID)

	if err := d.client.Do(ctx, d.client.B().Del().Key(key).Build()).Error(); err != nil {
		return fmt.Errorf("failed to clear burst window: %w", err)
	}

	return nil
}
