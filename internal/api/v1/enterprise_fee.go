package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harvestlane/backoffice/internal/api/dto"
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/internal/logger"
	"github.com/harvestlane/backoffice/internal/service"
	"github.com/harvestlane/backoffice/internal/types"
)

type EnterpriseFeeHandler struct {
	service service.EnterpriseFeeService
	logger  *logger.Logger
}

func NewEnterpriseFeeHandler(service service.EnterpriseFeeService, logger *logger.Logger) *EnterpriseFeeHandler {
	return &EnterpriseFeeHandler{
		service: service,
		logger:  logger,
	}
}

// @Summary Create enterprise fee
// @Description Create a fee an enterprise charges through its order cycles
// @Tags Enterprise Fees
// @Accept json
// @Produce json
// @Security TenantHeader
// @Param enterprise_fee body dto.CreateEnterpriseFeeRequest true "Enterprise fee"
// @Success 201 {object} dto.EnterpriseFeeResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /enterprise_fees [post]
func (h *EnterpriseFeeHandler) CreateEnterpriseFee(c *gin.Context) {
	var req dto.CreateEnterpriseFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateEnterpriseFee(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get enterprise fee
// @Tags Enterprise Fees
// @Produce json
// @Security TenantHeader
// @Param id path string true "Enterprise fee ID"
// @Success 200 {object} dto.EnterpriseFeeResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /enterprise_fees/{id} [get]
func (h *EnterpriseFeeHandler) GetEnterpriseFee(c *gin.Context) {
	resp, err := h.service.GetEnterpriseFee(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List enterprise fees
// @Description List published enterprise fees, optionally for one enterprise
// @Tags Enterprise Fees
// @Produce json
// @Security TenantHeader
// @Param filter query types.EnterpriseFeeFilter false "Filter"
// @Success 200 {object} dto.ListEnterpriseFeesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /enterprise_fees [get]
func (h *EnterpriseFeeHandler) ListEnterpriseFees(c *gin.Context) {
	var filter types.EnterpriseFeeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListEnterpriseFees(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update enterprise fee
// @Description Update a fee. Orders using it are recalculated in the background.
// @Tags Enterprise Fees
// @Accept json
// @Produce json
// @Security TenantHeader
// @Param id path string true "Enterprise fee ID"
// @Param enterprise_fee body dto.UpdateEnterpriseFeeRequest true "Fields to change"
// @Success 200 {object} dto.EnterpriseFeeResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /enterprise_fees/{id} [put]
func (h *EnterpriseFeeHandler) UpdateEnterpriseFee(c *gin.Context) {
	var req dto.UpdateEnterpriseFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateEnterpriseFee(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete enterprise fee
// @Tags Enterprise Fees
// @Security TenantHeader
// @Param id path string true "Enterprise fee ID"
// @Success 204
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /enterprise_fees/{id} [delete]
func (h *EnterpriseFeeHandler) DeleteEnterpriseFee(c *gin.Context) {
	if err := h.service.DeleteEnterpriseFee(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
