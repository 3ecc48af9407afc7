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

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register godoc
// @Summary Register a new user account
// @Description Creates a user and returns a signed token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.RegisterRequestDTO true "Name, email and password"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponseDTO}
// @Failure 400 {object} dto.ErrorResponse "Invalid input or email already registered"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Register: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request body", err.Error()))
		return
	}

	resp, err := c.authService.Register(req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			ctx.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
			return
		}
		log.Error().Err(err).Msg("Register: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to register"))
		return
	}
	ctx.JSON(http.StatusCreated, dto.OK(resp))
}

// Login godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequestDTO true "Email and password"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponseDTO}
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.Fail("Invalid request body", err.Error()))
		return
	}

	resp, err := c.authService.Login(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, dto.Fail(err.Error()))
			return
		}
		log.Error().Err(err).Msg("Login: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.Fail("Failed to log in"))
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(resp))
}

// GetMe godoc
// @Summary Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserDTO}
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) GetMe(ctx *gin.Context) {
	user, err := c.authService.GetMe(middleware.UserID(ctx))
	if err != nil {
		log.Warn().Err(err).Msg("GetMe: Service error")
		ctx.JSON(http.StatusNotFound, dto.Fail("User not found"))
		return
	}
	ctx.JSON(http.StatusOK, dto.OK(gin.H{"user": user}))
}
