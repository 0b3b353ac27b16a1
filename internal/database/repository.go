package database

import (
	"github.com/amora-app/amora/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	user         *models.UserModel
	reputation   *models.ReputationModel
	metrics      *models.MessageMetricsModel
	report       *models.ReportModel
	block        *models.BlockModel
	conversation *models.ConversationModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		user:         models.NewUser(db, logger),
		reputation:   models.NewReputation(db, logger),
		metrics:      models.NewMessageMetrics(db, logger),
		report:       models.NewReport(db, logger),
		block:        models.NewBlock(db, logger),
		conversation: models.NewConversation(db, logger),
	}
}

// User returns the user model repository.
func (r *Repository) User() *models.UserModel {
	return r.user
}

// Reputation returns the reputation model repository.
func (r *Repository) Reputation() *models.ReputationModel {
	return r.reputation
}

// Metrics returns the message metrics model repository.
func (r *Repository) Metrics() *models.MessageMetricsModel {
	return r.metrics
}

// Report returns the report model repository.
func (r *Repository) Report() *models.ReportModel {
	return r.report
}

// Block returns the block model repository.
func (r *Repository) Block() *models.BlockModel {
	return r.block
}

// Conversation returns the conversation model repository.
func (r *Repository) Conversation() *models.ConversationModel {
	return r.conversation
}
