package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educoin-uz/educoin-api/internal/service"
	appErrors "github.com/educoin-uz/educoin-api/pkg/errors"
	"github.com/educoin-uz/educoin-api/pkg/response"
)

// StudentHandler exposes roster and coin-balance endpoints.
type StudentHandler struct {
	students *service.StudentService
	metrics  *service.MetricsService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService, metrics *service.MetricsService) *StudentHandler {
	return &StudentHandler{students: students, metrics: metrics}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.students.List(c.Request.Context()), nil)
}

// Get godoc
// @Summary Get student detail
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Create godoc
// @Summary Register student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Update student profile
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.UpdateStudentRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	var req service.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Delete godoc
// @Summary Remove student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 204
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AdjustCoins godoc
// @Summary Adjust coin balance
// @Description Apply a signed delta to a student's balance, clamped at zero
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.AdjustCoinsRequest true "Signed delta"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/coins [post]
func (h *StudentHandler) AdjustCoins(c *gin.Context) {
	var req service.AdjustCoinsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.AdjustCoins(c.Request.Context(), c.Param("id"), req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.CountCoinsAwarded(req.Delta)
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Leaderboard godoc
// @Summary Coin leaderboard
// @Description Students ranked by coins descending, ties in roster order
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /leaderboard [get]
func (h *StudentHandler) Leaderboard(c *gin.Context) {
	currentID := ""
	if claims := claimsFromContext(c); claims != nil {
		currentID = claims.UserID
	}
	response.JSON(c, http.StatusOK, h.students.Leaderboard(c.Request.Context(), currentID), nil)
}
