package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educoin-uz/educoin-api/internal/service"
	"github.com/educoin-uz/educoin-api/pkg/response"
)

// ExportHandler streams leaderboard exports.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Leaderboard godoc
// @Summary Export leaderboard
// @Description Downloads the current standings as CSV or PDF
// @Tags Exports
// @Produce octet-stream
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /exports/leaderboard [get]
func (h *ExportHandler) Leaderboard(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	file, err := h.exports.LeaderboardExport(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
