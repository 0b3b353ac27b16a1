package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			// Gate lookups run both directions of a block in one query.
			`CREATE INDEX IF NOT EXISTS idx_block_relations_blocked
			   ON block_relations (blocked_id, blocker_id)`,
			// Conversation existence checks hit the normalized pair.
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_conversations_pair
			   ON conversations (user_low_id, user_high_id)`,
			// Report-rate windows count by reporter and time.
			`CREATE INDEX IF NOT EXISTS idx_reports_reporter_created
			   ON reports (reporter_id, created_at)`,
			// Signal aggregation counts reports received per user.
			`CREATE INDEX IF NOT EXISTS idx_reports_reported_created
			   ON reports (reported_user_id, created_at)`,
			// The nightly sweep pages eligible users by id.
			`CREATE INDEX IF NOT EXISTS idx_users_onboarding
			   ON users (id) WHERE onboarding_completed`,
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, idx); err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"idx_block_relations_blocked",
			"idx_conversations_pair",
			"idx_reports_reporter_created",
			"idx_reports_reported_created",
			"idx_users_onboarding",
		}

		for _, idx := range indexes {
			if _, err := db.ExecContext(ctx, "DROP INDEX IF EXISTS "+idx); err != nil {
				return fmt.Errorf("failed to drop index: %w", err)
			}
		}

		return nil
	})
}
