package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/servio-inc/servio/internal/application/catalog/usecases"
	"github.com/servio-inc/servio/internal/interfaces/dto"
	apperrors "github.com/servio-inc/servio/internal/shared/errors"
	"github.com/servio-inc/servio/internal/shared/logger"
	"github.com/servio-inc/servio/internal/shared/utils"
)

type PromoCodeHandler struct {
	createUC *usecases.CreatePromoCodeUseCase
	updateUC *usecases.UpdatePromoCodeUseCase
	deleteUC *usecases.DeletePromoCodeUseCase
	listUC   *usecases.ListPromoCodesUseCase
	logger   logger.Interface
}

func NewPromoCodeHandler(
	createUC *usecases.CreatePromoCodeUseCase,
	updateUC *usecases.UpdatePromoCodeUseCase,
	deleteUC *usecases.DeletePromoCodeUseCase,
	listUC *usecases.ListPromoCodesUseCase,
	logger logger.Interface,
) *PromoCodeHandler {
	return &PromoCodeHandler{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		listUC:   listUC,
		logger:   logger,
	}
}

func parsePromoID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("invalid promo code ID", raw)
	}
	return uint(id), nil
}

type CreatePromoCodeRequest struct {
	Code            string     `json:"code" binding:"required"`
	DiscountPercent int        `json:"discount_percent" binding:"required,min=1,max=100"`
	MaxUses         int        `json:"max_uses" binding:"min=0"`
	ExpiresAt       *time.Time `json:"expires_at"`
}

func (h *PromoCodeHandler) Create(c *gin.Context) {
	var req CreatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create promo code", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CreatePromoCodeCommand{
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		MaxUses:         req.MaxUses,
		ExpiresAt:       req.ExpiresAt,
	}

	promo, err := h.createUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.NewPromoCodeResponse(promo), "Promo code created")
}

type UpdatePromoCodeRequest struct {
	DiscountPercent int        `json:"discount_percent" binding:"required,min=1,max=100"`
	MaxUses         int        `json:"max_uses" binding:"min=0"`
	ExpiresAt       *time.Time `json:"expires_at"`
	Active          *bool      `json:"active"`
}

func (h *PromoCodeHandler) Update(c *gin.Context) {
	promoID, err := parsePromoID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update promo code", "id", promoID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.UpdatePromoCodeCommand{
		ID:              promoID,
		DiscountPercent: req.DiscountPercent,
		MaxUses:         req.MaxUses,
		ExpiresAt:       req.ExpiresAt,
		Active:          req.Active,
	}

	promo, err := h.updateUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Promo code updated", dto.NewPromoCodeResponse(promo))
}

func (h *PromoCodeHandler) Delete(c *gin.Context) {
	promoID, err := parsePromoID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), promoID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *PromoCodeHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListPromoCodesQuery{
		Offset: pagination.Offset(),
		Limit:  pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c,
		dto.NewPromoCodeResponses(result.PromoCodes),
		result.Total,
		pagination.Page,
		pagination.PageSize)
}
