package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quizforge/mocktest/internal/dto"
	"github.com/quizforge/mocktest/internal/service"
	"github.com/rs/zerolog/log"
)

type TestController struct {
	testService service.TestService
}

func NewTestController(testService service.TestService) *TestController {
	return &TestController{testService: testService}
}

// GetAllTests godoc
// @Summary List all available tests
// @Description Get the test catalog, optionally filtered by category or a title search.
// @Tags Tests
// @Produce json
// @Param category query string false "Filter by category"
// @Param search query string false "Filter by title substring"
// @Success 200 {object} dto.APIResponse{data=[]dto.TestSummaryDTO}
// @Failure 500 {object} dto.ErrorResponse
// @Router /tests [get]
func (c *TestController) GetAllTests(ctx *gin.Context) {
	tests, err := c.testService.GetAllTests(ctx.Query("category"), ctx.Query("search"))
	if err != nil {
		log.Error().Err(err).Msg("GetAllTests: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to retrieve tests"))
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(tests))
}

// GetTestDetails godoc
// @Summary Get details of a specific test
// @Description Full test details including questions (without correct answers).
// @Tags Tests
// @Produce json
// @Param id path int true "Test ID"
// @Success 200 {object} dto.APIResponse{data=dto.TestDetailDTO}
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{id} [get]
func (c *TestController) GetTestDetails(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid test ID format"))
		return
	}

	detail, err := c.testService.GetTestDetails(uint(testID))
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.Fail("Test not found"))
			return
		}
		log.Error().Err(err).Uint64("testID", testID).Msg("GetTestDetails: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to retrieve test"))
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(detail))
}
