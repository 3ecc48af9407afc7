package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizforge/mocktest/internal/dto"
	"github.com/quizforge/mocktest/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminTestController struct {
	adminTestService service.AdminTestService
}

func NewAdminTestController(adminTestService service.AdminTestService) *AdminTestController {
	return &AdminTestController{adminTestService: adminTestService}
}

// CreateTest godoc
// @Summary (Admin) Create a new test with its questions
// @Description Admin creates a test with multiple-choice questions, correct answers included.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test_data body dto.TestCreateDTO true "Test creation data including all questions"
// @Success 201 {object} dto.APIResponse{data=dto.TestResponseDTO} "Test created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Router /admin/tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateTest: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request body", err.Error()))
		return
	}

	testResp, err := c.adminTestService.CreateTest(req)
	if err != nil {
		log.Error().Err(err).Msg("Admin CreateTest: Service error")
		ctx.JSON(http.StatusBadRequest, dto.Fail("Failed to create test", err.Error()))
		return
	}
	ctx.JSON(http.StatusCreated, dto.OK(testResp))
}
