package migrations

import (
	"context"
	"fmt"

	"github.com/amora-app/amora/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		tables := []struct {
			model any
			name  string
		}{
			{(*types.User)(nil), "users"},
			{(*types.ReputationData)(nil), "reputation_data"},
			{(*types.MessageMetrics)(nil), "message_metrics"},
			{(*types.Report)(nil), "reports"},
			{(*types.BlockRelation)(nil), "block_relations"},
			{(*types.Conversation)(nil), "conversations"},
		}

		for _, table := range tables {
			_, err := db.NewCreateTable().
				Model(table.model).
				ModelTableExpr(table.name).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table %s: %w", table.name, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		tables := []string{
			"conversations",
			"block_relations",
			"reports",
			"message_metrics",
			"reputation_data",
			"users",
		}

		for _, table := range tables {
			_, err := db.NewDropTable().
				TableExpr(table).
				IfExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
		}

		return nil
	})
}
