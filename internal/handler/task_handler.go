package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/educoin-uz/educoin-api/internal/service"
	appErrors "github.com/educoin-uz/educoin-api/pkg/errors"
	"github.com/educoin-uz/educoin-api/pkg/response"
)

// TaskHandler exposes assignment endpoints.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler constructs TaskHandler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// List godoc
// @Summary List active tasks
// @Description Tasks still inside their 24-hour lifetime
// @Tags Tasks
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.tasks.Active(c.Request.Context(), time.Now()), nil)
}

// ListAll godoc
// @Summary List all tasks including expired
// @Tags Tasks
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tasks/all [get]
func (h *TaskHandler) ListAll(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.tasks.All(c.Request.Context()), nil)
}

// Get godoc
// @Summary Get task detail
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} response.Envelope
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.tasks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, task, nil)
}

// Create godoc
// @Summary Publish task
// @Description Publishes a task active for 24 hours
// @Tags Tasks
// @Accept json
// @Produce json
// @Param payload body service.CreateTaskRequest true "Task payload"
// @Success 201 {object} response.Envelope
// @Router /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	task, err := h.tasks.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, task)
}

// Prune godoc
// @Summary Remove expired tasks
// @Tags Tasks
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tasks/expired [delete]
func (h *TaskHandler) Prune(c *gin.Context) {
	removed := h.tasks.PruneExpired(c.Request.Context())
	response.JSON(c, http.StatusOK, gin.H{"removed": removed}, nil)
}
