package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizforge/mocktest/internal/dto"
	"github.com/quizforge/mocktest/internal/middleware"
	"github.com/quizforge/mocktest/internal/service"
	"github.com/rs/zerolog/log"
)

type PurchaseController struct {
	purchaseService    service.PurchaseService
	performanceService service.PerformanceService
}

func NewPurchaseController(purchaseService service.PurchaseService, performanceService service.PerformanceService) *PurchaseController {
	return &PurchaseController{purchaseService: purchaseService, performanceService: performanceService}
}

// PurchaseTests godoc
// @Summary Record test purchases for the caller
// @Tags Purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.PurchaseRequestDTO true "Test IDs to purchase"
// @Success 201 {object} dto.APIResponse{data=[]dto.PurchaseDTO}
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /purchases [post]
func (c *PurchaseController) PurchaseTests(ctx *gin.Context) {
	var req dto.PurchaseRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request body", err.Error()))
		return
	}

	purchases, err := c.purchaseService.PurchaseTests(middleware.UserID(ctx), req.TestIDs)
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.Fail("Test not found"))
			return
		}
		log.Error().Err(err).Msg("PurchaseTests: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to record purchases"))
		return
	}
	ctx.JSON(http.StatusCreated, dto.OK(purchases))
}

// GetPurchasedTests godoc
// @Summary List the caller's purchased tests
// @Tags Purchases
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PurchaseDTO}
// @Router /purchases [get]
func (c *PurchaseController) GetPurchasedTests(ctx *gin.Context) {
	purchases, err := c.purchaseService.GetPurchasedTests(middleware.UserID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("GetPurchasedTests: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to list purchases"))
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(purchases))
}

// CheckPurchase godoc
// @Summary Check whether the caller purchased a test
// @Tags Purchases
// @Produce json
// @Security BearerAuth
// @Param testId path string true "Test ID"
// @Success 200 {object} dto.APIResponse{data=dto.CheckPurchaseDTO}
// @Router /purchases/check/{testId} [get]
func (c *PurchaseController) CheckPurchase(ctx *gin.Context) {
	check, err := c.purchaseService.CheckPurchase(middleware.UserID(ctx), ctx.Param("testId"))
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.Fail("Test not found"))
			return
		}
		log.Error().Err(err).Msg("CheckPurchase: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to check purchase"))
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(check))
}

// GetPerformance godoc
// @Summary Get the caller's aggregate performance
// @Tags Performance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.PerformanceDTO}
// @Router /performance [get]
func (c *PurchaseController) GetPerformance(ctx *gin.Context) {
	perf, err := c.performanceService.GetPerformance(middleware.UserID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("GetPerformance: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to load performance"))
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(perf))
}
