package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educoin-uz/educoin-api/internal/models"
	"github.com/educoin-uz/educoin-api/internal/service"
	appErrors "github.com/educoin-uz/educoin-api/pkg/errors"
	"github.com/educoin-uz/educoin-api/pkg/response"
)

// ShopHandler exposes the reward shop endpoints.
type ShopHandler struct {
	shop    *service.ShopService
	metrics *service.MetricsService
}

// NewShopHandler constructs ShopHandler.
func NewShopHandler(shop *service.ShopService, metrics *service.MetricsService) *ShopHandler {
	return &ShopHandler{shop: shop, metrics: metrics}
}

// Catalog godoc
// @Summary Reward catalog
// @Tags Shop
// @Produce json
// @Param category query string false "Filter by category (EDU or TECH)"
// @Success 200 {object} response.Envelope
// @Router /shop/rewards [get]
func (h *ShopHandler) Catalog(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		rewards := h.shop.CatalogByCategory(c.Request.Context(), models.RewardCategory(category))
		response.JSON(c, http.StatusOK, rewards, nil)
		return
	}
	response.JSON(c, http.StatusOK, h.shop.Catalog(c.Request.Context()), nil)
}

// Buy godoc
// @Summary Buy reward
// @Description The caller spends coins on a catalog reward
// @Tags Shop
// @Produce json
// @Param id path string true "Reward ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /shop/rewards/{id}/buy [post]
func (h *ShopHandler) Buy(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	result, err := h.shop.Buy(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.CountPurchase(result.Reward.Cost)
	}
	response.JSON(c, http.StatusOK, result, nil)
}
