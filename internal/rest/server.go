package rest

import (
	"net/http"

	"github.com/amora-app/amora/internal/database"
	"github.com/amora-app/amora/internal/reputation"
	"github.com/amora-app/amora/internal/rest/handler"
	"github.com/amora-app/amora/internal/rest/middleware/ratelimit"
	"github.com/amora-app/amora/internal/rest/middleware/requestlog"
	"github.com/amora-app/amora/internal/setup/config"
	"github.com/klauspost/compress/gzhttp"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Server implements the REST API service.
type Server struct {
	userHandler       *handler.UserHandler
	reputationHandler *handler.ReputationHandler
	messageHandler    *handler.MessageHandler
	reportHandler     *handler.ReportHandler
	blockHandler      *handler.BlockHandler
}

// NewServer creates a new REST API server.
func NewServer(
	db database.Client, engine *reputation.Engine, logger *zap.Logger, config *config.APIConfig,
) http.Handler {
	// Create server instance with handlers
	server := &Server{
		userHandler:       handler.NewUserHandler(engine, logger),
		reputationHandler: handler.NewReputationHandler(engine, logger),
		messageHandler:    handler.NewMessageHandler(engine, logger),
		reportHandler:     handler.NewReportHandler(engine, logger),
		blockHandler:      handler.NewBlockHandler(db, logger),
	}

	// Create middleware instances
	logMiddleware := requestlog.New(logger)
	rateLimiter := ratelimit.New(&config.RateLimit, logger)

	// Create base router
	router := bunrouter.New()

	// Create API routes group
	router.Use(
		logMiddleware.AsRESTMiddleware,
		rateLimiter.AsRESTMiddleware,
	).WithGroup("/v1", func(g *bunrouter.Group) {
		g.POST("/users", server.userHandler.CompleteOnboarding)
		g.GET("/users/:id/reputation", server.reputationHandler.GetReputation)
		g.GET("/permissions/message", server.reputationHandler.CheckPermission)
		g.POST("/messages", server.messageHandler.SendMessage)
		g.POST("/reports", server.reportHandler.FileReport)
		g.PATCH("/reports/:id", server.reportHandler.UpdateStatus)
		g.PUT("/blocks/:id", server.blockHandler.Block)
		g.DELETE("/blocks/:id", server.blockHandler.Unblock)
	})

	// Add gzip compression
	return gzhttp.GzipHandler(router)
}
