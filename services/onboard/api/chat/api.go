package chat

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Fasscorp/Fassimo/services/onboard/api/entity"
	"github.com/Fasscorp/Fassimo/services/onboard/model"
	"github.com/Fasscorp/Fassimo/services/onboard/orchestrator"
	"github.com/Fasscorp/Fassimo/services/onboard/repository"
	"github.com/Fasscorp/Fassimo/services/onboard/tools"
	"github.com/Fasscorp/Fassimo/services/onboard/topics"
)

// Runner is what the handler needs from the orchestrator.
type Runner interface {
	Execute(ctx context.Context, threadID, message, assistantID string, toolset []openai.Tool) (orchestrator.Result, error)
}

// Completer serves the legacy one-shot ask endpoint.
type Completer interface {
	Completion(ctx context.Context, message string) (string, error)
}

type API struct {
	tracer     trace.Tracer
	logger     *zap.Logger
	runner     Runner
	completer  Completer
	registry   *tools.Registry
	topics     *topics.Table
	threadRepo repository.Thread
}

func New(logger *zap.Logger, runner Runner, completer Completer, registry *tools.Registry, topicTable *topics.Table, threadRepo repository.Thread) API {
	return API{
		tracer:     otel.GetTracerProvider().Tracer("onboard.http.chat"),
		logger:     logger.Named("chat"),
		runner:     runner,
		completer:  completer,
		registry:   registry,
		topics:     topicTable,
		threadRepo: threadRepo,
	}
}

func (s API) Register(e *echo.Echo) {
	e.POST("/api/chat", s.Chat)
	e.POST("/api/ask", s.Ask)
}

// Chat godoc
//
//	@Summary		Send a chat message for a topic
//	@Description	Runs one assistant turn: reuses or creates the thread, polls the run and bridges tool calls
//	@Tags			chat
//	@Produce		json
//	@Param			request	body		entity.ChatRequest	true	"Request"
//	@Success		200		{object}	entity.ChatResponse
//	@Router			/api/chat [post]
func (s API) Chat(c echo.Context) error {
	ctx := otel.GetTextMapPropagator().Extract(c.Request().Context(), propagation.HeaderCarrier(c.Request().Header))

	ctx, span := s.tracer.Start(ctx, "chat")
	defer span.End()

	var req entity.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid request body"})
	}
	if req.Message == "" || req.Topic == "" {
		return c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "missing message or topic in request body"})
	}

	topic, ok := s.topics.Get(req.Topic)
	if !ok {
		return c.JSON(http.StatusBadRequest, entity.ErrorResponse{
			Error: fmt.Sprintf("no assistant configured for topic: %s", req.Topic),
		})
	}

	assistantID := topic.AssistantID()
	if assistantID == "" {
		s.logger.Error("missing assistant id",
			zap.String("topic", req.Topic),
			zap.String("env", topic.AssistantEnv))
		return c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error: fmt.Sprintf("missing assistant id for topic: %s", req.Topic),
		})
	}

	toolset := s.registry.Toolset(topic.Tools)

	res, err := s.runner.Execute(ctx, req.ThreadID, req.Message, assistantID, toolset)
	if err != nil {
		s.logger.Error("failed to execute assistant run",
			zap.String("topic", req.Topic),
			zap.String("thread_id", req.ThreadID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error:   "failed to process request",
			Details: err.Error(),
		})
	}

	if req.ThreadID == "" && res.ThreadID != "" {
		err := s.threadRepo.Create(ctx, model.Thread{ID: res.ThreadID, Topic: req.Topic})
		if err != nil {
			// bookkeeping only; the conversation itself lives with the provider
			s.logger.Warn("failed to record thread", zap.String("thread_id", res.ThreadID), zap.Error(err))
		}
	}

	return c.JSON(http.StatusOK, entity.ChatResponse{
		Reply:    res.Reply,
		ThreadID: &res.ThreadID,
	})
}

// Ask godoc
//
//	@Summary		One-shot completion [standalone]
//	@Description	Plain chat completion without threads or tools
//	@Tags			chat
//	@Produce		json
//	@Param			request	body		entity.AskRequest	true	"Request"
//	@Success		200		{object}	entity.AskResponse
//	@Router			/api/ask [post]
func (s API) Ask(c echo.Context) error {
	ctx := otel.GetTextMapPropagator().Extract(c.Request().Context(), propagation.HeaderCarrier(c.Request().Header))

	ctx, span := s.tracer.Start(ctx, "ask")
	defer span.End()

	var req entity.AskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "missing message in request body"})
	}

	reply, err := s.completer.Completion(ctx, req.Message)
	if err != nil {
		s.logger.Error("completion failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
			Error:   "failed to process request",
			Details: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, entity.AskResponse{Reply: reply})
}
