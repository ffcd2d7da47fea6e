package tasks

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Fasscorp/Fassimo/services/onboard/api/entity"
	"github.com/Fasscorp/Fassimo/services/onboard/model"
	"github.com/Fasscorp/Fassimo/services/onboard/repository"
)

type API struct {
	logger *zap.Logger
	repo   repository.Task
}

func New(logger *zap.Logger, repo repository.Task) API {
	return API{
		logger: logger.Named("tasks"),
		repo:   repo,
	}
}

func (s API) Register(g *echo.Group) {
	g.GET("", s.List)
	g.POST("", s.Create)
	g.PUT("/:id", s.Update)
	g.DELETE("/:id", s.Delete)
}

// List godoc
//
//	@Summary	List tasks, newest first
//	@Tags		tasks
//	@Produce	json
//	@Success	200	{array}	model.Task
//	@Router		/api/tasks [get]
func (s API) List(c echo.Context) error {
	tasks, err := s.repo.List(c.Request().Context())
	if err != nil {
		s.logger.Error("failed to list tasks", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "failed to list tasks"})
	}

	if tasks == nil {
		tasks = []model.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create godoc
//
//	@Summary	Create a task
//	@Tags		tasks
//	@Produce	json
//	@Param		request	body		entity.TaskCreateRequest	true	"Request"
//	@Success	201		{object}	model.Task
//	@Router		/api/tasks [post]
func (s API) Create(c echo.Context) error {
	var req entity.TaskCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid request body"})
	}

	if req.Name == "" {
		req.Name = "Untitled Task"
	}

	task := model.Task{
		Name:      req.Name,
		Completed: false,
		Tags:      datatypes.JSONSlice[string](req.Tags),
		DueDate:   req.DueDate,
		Order:     time.Now().UnixMilli(),
	}
	if task.Tags == nil {
		task.Tags = datatypes.JSONSlice[string]{}
	}

	if err := s.repo.Create(c.Request().Context(), &task); err != nil {
		s.logger.Error("failed to create task", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "failed to create task"})
	}

	return c.JSON(http.StatusCreated, task)
}

// Update godoc
//
//	@Summary		Update a task
//	@Description	Partial update: only supplied fields change (name, completed, dueDate, tags)
//	@Tags			tasks
//	@Produce		json
//	@Param			id	path		string	true	"Task ID"
//	@Success		200	{object}	model.Task
//	@Router			/api/tasks/{id} [put]
func (s API) Update(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid task id format"})
	}

	var body map[string]json.RawMessage
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid request body"})
	}

	// only supplied fields change; null dueDate clears it
	updates := map[string]any{}
	if raw, ok := body["name"]; ok {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid name field"})
		}
		updates["name"] = name
	}
	if raw, ok := body["completed"]; ok {
		var completed bool
		if err := json.Unmarshal(raw, &completed); err != nil {
			return c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid completed field"})
		}
		updates["completed"] = completed
	}
	if raw, ok := body["dueDate"]; ok {
		var dueDate *time.Time
		if err := json.Unmarshal(raw, &dueDate); err != nil {
			return c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid dueDate field"})
		}
		updates["due_date"] = dueDate
	}
	if raw, ok := body["tags"]; ok {
		var tags []string
		if err := json.Unmarshal(raw, &tags); err != nil {
			return c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid tags field"})
		}
		updates["tags"] = datatypes.JSONSlice[string](tags)
	}

	if len(updates) == 0 {
		return c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "no valid fields provided for update"})
	}

	task, err := s.repo.Update(c.Request().Context(), id, updates)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "task not found"})
		}
		s.logger.Error("failed to update task", zap.String("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "failed to update task"})
	}

	return c.JSON(http.StatusOK, task)
}

// Delete godoc
//
//	@Summary	Delete a task
//	@Tags		tasks
//	@Produce	json
//	@Param		id	path	string	true	"Task ID"
//	@Success	200	{object}	entity.TaskDeleteResponse
//	@Router		/api/tasks/{id} [delete]
func (s API) Delete(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid task id format"})
	}

	if err := s.repo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "task not found"})
		}
		s.logger.Error("failed to delete task", zap.String("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "failed to delete task"})
	}

	return c.JSON(http.StatusOK, entity.TaskDeleteResponse{Success: true, Message: "task deleted"})
}
