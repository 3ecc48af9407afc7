package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quizforge/mocktest/internal/dto"
	"github.com/quizforge/mocktest/internal/middleware"
	"github.com/quizforge/mocktest/internal/service"
	"github.com/rs/zerolog/log"
)

type AttemptController struct {
	attemptService     service.AttemptService
	leaderboardService service.LeaderboardService
}

func NewAttemptController(attemptService service.AttemptService, leaderboardService service.LeaderboardService) *AttemptController {
	return &AttemptController{attemptService: attemptService, leaderboardService: leaderboardService}
}

// CreateAttempt godoc
// @Summary Create a new attempt on a test
// @Description Creates an attempt record. Paid tests require a prior purchase.
// @Tags Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateAttemptRequestDTO true "Test to attempt"
// @Success 201 {object} dto.APIResponse{data=dto.CreateAttemptResponseDTO}
// @Failure 403 {object} dto.ErrorResponse "Test not purchased"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /attempts [post]
func (c *AttemptController) CreateAttempt(ctx *gin.Context) {
	var req dto.CreateAttemptRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request body", err.Error()))
		return
	}

	resp, err := c.attemptService.CreateAttempt(middleware.UserID(ctx), req.TestID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTestNotFound):
			ctx.JSON(http.StatusNotFound, dto.Fail("Test not found"))
		case errors.Is(err, service.ErrNotPurchased):
			ctx.JSON(http.StatusForbidden, dto.Fail("You must purchase this test before attempting it"))
		default:
			log.Error().Err(err).Str("testID", req.TestID).Msg("CreateAttempt: Service error")
			ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to create attempt"))
		}
		return
	}
	ctx.JSON(http.StatusCreated, dto.OK(resp))
}

// GetAttempt godoc
// @Summary Load an attempt with its questions and saved progress
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.APIResponse{data=dto.AttemptDetailDTO}
// @Failure 404 {object} dto.ErrorResponse "Attempt not found or not owned by caller"
// @Router /attempts/{id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	detail, err := c.attemptService.GetAttempt(ctx.Param("id"), middleware.UserID(ctx))
	if err != nil {
		if errors.Is(err, service.ErrAttemptNotFound) {
			ctx.JSON(http.StatusNotFound, dto.Fail("Attempt not found"))
			return
		}
		log.Error().Err(err).Str("attemptID", ctx.Param("id")).Msg("GetAttempt: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to load attempt"))
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(detail))
}

// ListAttempts godoc
// @Summary List the caller's attempts
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.AttemptSummaryDTO}
// @Router /attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	summaries, err := c.attemptService.ListUserAttempts(middleware.UserID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("ListAttempts: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to list attempts"))
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(summaries))
}

// StartAttempt godoc
// @Summary Start the attempt timer
// @Description Marks the attempt started. Idempotent: repeated calls return the original timestamp.
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.APIResponse{data=dto.StartAttemptResponseDTO}
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Router /attempts/{id}/start [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	resp, err := c.attemptService.StartAttempt(ctx.Param("id"), middleware.UserID(ctx))
	if err != nil {
		c.respondAttemptError(ctx, err, "StartAttempt")
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(resp))
}

// UpdateProgress godoc
// @Summary Save attempt progress
// @Description Full-snapshot write of answers, marked questions and/or current position.
// @Tags Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attempt ID"
// @Param body body dto.ProgressUpdateDTO true "Snapshot fields to replace"
// @Success 200 {object} dto.APIResponse{data=dto.ProgressEchoDTO}
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Router /attempts/{id} [put]
func (c *AttemptController) UpdateProgress(ctx *gin.Context) {
	var req dto.ProgressUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request body", err.Error()))
		return
	}

	echo, err := c.attemptService.UpdateProgress(ctx.Param("id"), middleware.UserID(ctx), req)
	if err != nil {
		if errors.Is(err, service.ErrIndexOutOfRange) {
			ctx.JSON(http.StatusBadRequest, dto.Fail("currentQuestionIndex out of range"))
			return
		}
		c.respondAttemptError(ctx, err, "UpdateProgress")
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(echo))
}

// SubmitAttempt godoc
// @Summary Submit and score the attempt
// @Description Finalizes the attempt. Idempotent: re-submitting returns the stored result.
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubmitResultDTO}
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt never started"
// @Router /attempts/{id}/submit [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	result, err := c.attemptService.SubmitAttempt(ctx.Request.Context(), ctx.Param("id"), middleware.UserID(ctx))
	if err != nil {
		if errors.Is(err, service.ErrAttemptNotStarted) {
			ctx.JSON(http.StatusConflict, dto.Fail("Attempt has not been started"))
			return
		}
		c.respondAttemptError(ctx, err, "SubmitAttempt")
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(result))
}

// GetLeaderboard godoc
// @Summary Get the global leaderboard
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of top performers to return (default 10)"
// @Success 200 {object} dto.APIResponse{data=dto.LeaderboardDTO}
// @Router /attempts/leaderboard [get]
func (c *AttemptController) GetLeaderboard(ctx *gin.Context) {
	limit := 0
	if limitStr := ctx.Query("limit"); limitStr != "" {
		val, err := strconv.Atoi(limitStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid limit format"))
			return
		}
		limit = val
	}

	board, err := c.leaderboardService.GetLeaderboard(ctx.Request.Context(), limit, middleware.UserID(ctx))
	if err != nil {
		log.Error().Err(err).Msg("GetLeaderboard: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to load leaderboard"))
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(board))
}

func (c *AttemptController) respondAttemptError(ctx *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, service.ErrAttemptNotFound):
		ctx.JSON(http.StatusNotFound, dto.Fail("Attempt not found"))
	case errors.Is(err, service.ErrAttemptSubmitted):
		ctx.JSON(http.StatusConflict, dto.Fail("Attempt has already been submitted"))
	default:
		log.Error().Err(err).Str("attemptID", ctx.Param("id")).Msgf("%s: Service error", op)
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Attempt operation failed"))
	}
}
