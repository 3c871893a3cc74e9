package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educoin-uz/educoin-api/internal/models"
	"github.com/educoin-uz/educoin-api/internal/service"
	appErrors "github.com/educoin-uz/educoin-api/pkg/errors"
	"github.com/educoin-uz/educoin-api/pkg/response"
)

// SubmissionHandler exposes homework hand-in and review endpoints.
type SubmissionHandler struct {
	submissions *service.SubmissionService
	metrics     *service.MetricsService
}

// NewSubmissionHandler constructs SubmissionHandler.
func NewSubmissionHandler(submissions *service.SubmissionService, metrics *service.MetricsService) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions, metrics: metrics}
}

// Submit godoc
// @Summary Hand in homework
// @Description The caller submits proof of work for a task
// @Tags Submissions
// @Accept json
// @Produce json
// @Param payload body service.SubmitHomeworkRequest true "Submission payload"
// @Success 201 {object} response.Envelope
// @Router /submissions [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SubmitHomeworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	sub, err := h.submissions.Submit(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.CountSubmission(string(models.SubmissionPending))
	}
	response.Created(c, sub)
}

// List godoc
// @Summary List all submissions
// @Description Every submission, most recent first
// @Tags Submissions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /submissions [get]
func (h *SubmissionHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.submissions.List(c.Request.Context()), nil)
}

// My godoc
// @Summary List own submissions
// @Tags Submissions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /submissions/my [get]
func (h *SubmissionHandler) My(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, h.submissions.ListByStudent(c.Request.Context(), claims.UserID), nil)
}

// Approve godoc
// @Summary Approve submission
// @Description Approves a pending submission and credits the snapshotted reward
// @Tags Submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /submissions/{id}/approve [post]
func (h *SubmissionHandler) Approve(c *gin.Context) {
	sub, err := h.submissions.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.CountSubmission(string(models.SubmissionApproved))
		h.metrics.CountCoinsAwarded(sub.Coins)
	}
	response.JSON(c, http.StatusOK, sub, nil)
}

// Reject godoc
// @Summary Reject submission
// @Description Rejects a pending submission without moving coins
// @Tags Submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /submissions/{id}/reject [post]
func (h *SubmissionHandler) Reject(c *gin.Context) {
	sub, err := h.submissions.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.CountSubmission(string(models.SubmissionRejected))
	}
	response.JSON(c, http.StatusOK, sub, nil)
}
