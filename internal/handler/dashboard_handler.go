package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/educoin-uz/educoin-api/internal/models"
	"github.com/educoin-uz/educoin-api/internal/service"
	appErrors "github.com/educoin-uz/educoin-api/pkg/errors"
	"github.com/educoin-uz/educoin-api/pkg/response"
)

// ActiveTaskView is a task plus a human-readable countdown.
type ActiveTaskView struct {
	models.Task
	TimeLeft string `json:"timeLeft"`
}

// DashboardSummary aggregates the student home-screen data in one payload.
type DashboardSummary struct {
	Coins         int                       `json:"coins"`
	Rank          int                       `json:"rank"`
	UnseenTasks   int                       `json:"unseenTasks"`
	BonusEligible bool                      `json:"bonusEligible"`
	TopStudents   []models.LeaderboardEntry `json:"topStudents"`
	ActiveTasks   []ActiveTaskView          `json:"activeTasks"`
}

// DashboardHandler serves the student home screen.
type DashboardHandler struct {
	students      *service.StudentService
	tasks         *service.TaskService
	notifications *service.NotificationService
	bonus         *service.BonusService
	motivator     *service.MotivatorService
	metrics       *service.MetricsService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(students *service.StudentService, tasks *service.TaskService, notifications *service.NotificationService, bonus *service.BonusService, motivator *service.MotivatorService, metrics *service.MetricsService) *DashboardHandler {
	return &DashboardHandler{students: students, tasks: tasks, notifications: notifications, bonus: bonus, motivator: motivator, metrics: metrics}
}

// Summary godoc
// @Summary Student dashboard summary
// @Description Coins, rank, unseen task count, bonus eligibility and top standings
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	ctx := c.Request.Context()

	student, err := h.students.Get(ctx, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	top := h.students.Leaderboard(ctx, claims.UserID)
	if len(top) > 5 {
		top = top[:5]
	}

	now := time.Now()
	active := h.tasks.Active(ctx, now)
	views := make([]ActiveTaskView, len(active))
	for i, task := range active {
		views[i] = ActiveTaskView{Task: task, TimeLeft: formatTimeLeft(task.TimeLeft(now))}
	}

	summary := DashboardSummary{
		Coins:         student.Coins,
		Rank:          h.students.Rank(ctx, claims.UserID),
		UnseenTasks:   h.notifications.UnseenCount(ctx, claims.UserID, now),
		BonusEligible: h.bonus.Eligible(ctx, claims.UserID),
		TopStudents:   top,
		ActiveTasks:   views,
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// formatTimeLeft renders a countdown as "23h 59m" or "45m" under an hour.
func formatTimeLeft(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// ClaimBonus godoc
// @Summary Claim daily bonus
// @Description Grants the fixed daily bonus once per calendar day
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /dashboard/bonus [post]
func (h *DashboardHandler) ClaimBonus(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	claim, err := h.bonus.Claim(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.CountBonusClaim()
		h.metrics.CountCoinsAwarded(claim.Amount)
	}
	response.JSON(c, http.StatusOK, claim, nil)
}

// ClearNotifications godoc
// @Summary Mark active tasks as seen
// @Tags Dashboard
// @Produce json
// @Success 204
// @Router /dashboard/notifications/clear [post]
func (h *DashboardHandler) ClearNotifications(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	h.notifications.Clear(c.Request.Context(), claims.UserID, time.Now())
	response.NoContent(c)
}

// Motivation godoc
// @Summary Motivational message
// @Description A short generated message for the caller, with canned fallbacks
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/motivation [get]
func (h *DashboardHandler) Motivation(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	ctx := c.Request.Context()

	coins := 0
	name := claims.Name
	if student, err := h.students.Get(ctx, claims.UserID); err == nil {
		coins = student.Coins
		name = student.Name
	}

	message := h.motivator.Generate(ctx, name, coins)
	response.JSON(c, http.StatusOK, gin.H{"message": message}, nil)
}
