package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harvestlane/backoffice/internal/api/dto"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/service"
)

type CalculatorHandler struct {
	service service.CalculatorService
	logger  *logger.Logger
}

func NewCalculatorHandler(service service.CalculatorService, logger *logger.Logger) *CalculatorHandler {
	return &CalculatorHandler{
		service: service,
		logger:  logger,
	}
}

// @Summary Preview calculator
// @Description Compute what a calculator would charge for a set of items without saving anything
// @Tags Calculators
// @Accept json
// @Produce json
// @Security TenantHeader
// @Param preview body dto.CalculatorPreviewRequest true "Calculator and items"
// @Success 200 {object} dto.CalculatorPreviewResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /calculators/preview [post]
func (h *CalculatorHandler) Preview(c *gin.Context) {
	var req dto.CalculatorPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Preview(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Estimate variant fees
// @Description Estimate the per-item fees one unit of a variant carries in an order cycle
// @Tags Calculators
// @Accept json
// @Produce json
// @Security TenantHeader
// @Param estimate body dto.EstimateVariantFeesRequest true "Variant and order cycle"
// @Success 200 {object} dto.EstimateVariantFeesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /calculators/estimate [post]
func (h *CalculatorHandler) EstimateVariantFees(c *gin.Context) {
	var req dto.EstimateVariantFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.EstimateVariantFees(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
