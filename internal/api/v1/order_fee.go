package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harvestlane/backoffice/internal/api/dto"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/service"
)

// OrderFeeHandler exposes the fee synchronization passes that checkout and the admin
// order editor run after an order changes
type OrderFeeHandler struct {
	synchronizer service.FeeSynchronizer
	logger       *logger.Logger
}

func NewOrderFeeHandler(synchronizer service.FeeSynchronizer, logger *logger.Logger) *OrderFeeHandler {
	return &OrderFeeHandler{
		synchronizer: synchronizer,
		logger:       logger,
	}
}

// @Summary Recreate order fees
// @Description Resynchronize every enterprise fee adjustment on the order, then taxes and totals
// @Tags Order Fees
// @Produce json
// @Security TenantHeader
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderFeesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /orders/{id}/fees/recreate [post]
func (h *OrderFeeHandler) RecreateAllFees(c *gin.Context) {
	h.respond(c, func() (*service.FeeSyncResult, error) {
		return h.synchronizer.RecreateAllFees(c.Request.Context(), c.Param("id"))
	})
}

// @Summary Refresh order fees
// @Description Recompute the amounts of the order's existing fee adjustments
// @Tags Order Fees
// @Produce json
// @Security TenantHeader
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderFeesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /orders/{id}/fees/refresh [post]
func (h *OrderFeeHandler) UpdateOrderFees(c *gin.Context) {
	h.respond(c, func() (*service.FeeSyncResult, error) {
		return h.synchronizer.UpdateOrderFees(c.Request.Context(), c.Param("id"))
	})
}

// @Summary Remove order cycle fees
// @Description Drop every open fee adjustment, for an order leaving its order cycle
// @Tags Order Fees
// @Produce json
// @Security TenantHeader
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderFeesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /orders/{id}/fees [delete]
func (h *OrderFeeHandler) RemoveOrderCycleFees(c *gin.Context) {
	h.respond(c, func() (*service.FeeSyncResult, error) {
		return h.synchronizer.RemoveOrderCycleFees(c.Request.Context(), c.Param("id"))
	})
}

// @Summary Refresh line item fees
// @Description Recompute the amounts of one line item's existing fee adjustments
// @Tags Order Fees
// @Produce json
// @Security TenantHeader
// @Param id path string true "Line item ID"
// @Success 200 {object} dto.OrderFeesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /line_items/{id}/fees/refresh [post]
func (h *OrderFeeHandler) UpdateLineItemFees(c *gin.Context) {
	h.respond(c, func() (*service.FeeSyncResult, error) {
		return h.synchronizer.UpdateLineItemFees(c.Request.Context(), c.Param("id"))
	})
}

func (h *OrderFeeHandler) respond(c *gin.Context, pass func() (*service.FeeSyncResult, error)) {
	if c.Param("id") == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	result, err := pass()
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderFeesResponse(
		result.Order,
		result.Changes.Created,
		result.Changes.Updated,
		result.Changes.Removed,
	))
}
