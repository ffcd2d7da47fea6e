package api

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Fasscorp/Fassimo/services/onboard/api/chat"
	"github.com/Fasscorp/Fassimo/services/onboard/api/tasks"
	"github.com/Fasscorp/Fassimo/services/onboard/assistant"
	"github.com/Fasscorp/Fassimo/services/onboard/db"
	"github.com/Fasscorp/Fassimo/services/onboard/orchestrator"
	"github.com/Fasscorp/Fassimo/services/onboard/repository"
	"github.com/Fasscorp/Fassimo/services/onboard/tools"
	"github.com/Fasscorp/Fassimo/services/onboard/topics"
)

type API struct {
	logger       *zap.Logger
	oc           *assistant.Service
	orchestrator *orchestrator.Orchestrator
	registry     *tools.Registry
	topics       *topics.Table
	database     db.Database
}

func New(
	logger *zap.Logger,
	oc *assistant.Service,
	orch *orchestrator.Orchestrator,
	registry *tools.Registry,
	topicTable *topics.Table,
	database db.Database,
) *API {
	return &API{
		logger:       logger.Named("api"),
		oc:           oc,
		orchestrator: orch,
		registry:     registry,
		topics:       topicTable,
		database:     database,
	}
}

func (api *API) Register(e *echo.Echo) {
	threadRepo := repository.NewThreadSQL(api.database)
	taskRepo := repository.NewTaskSQL(api.database)

	chat.New(api.logger, api.orchestrator, api.oc, api.registry, api.topics, threadRepo).Register(e)
	tasks.New(api.logger, taskRepo).Register(e.Group("/api/tasks"))
}
