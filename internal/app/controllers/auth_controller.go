// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/creditbridge/internal/app/models/dto"
	"github.com/yigit/creditbridge/internal/app/services"
	"github.com/yigit/creditbridge/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login handles administrator login
// @Summary Administrator login
// @Description Authenticates an administrator and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		c.logger.Warn().Msg("Invalid login request payload")
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Int64("adminId", result.AdminID).
		Msg("Administrator logged in successfully")

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: result.AccessToken,
			TokenType:   "Bearer",
			ExpiresIn:   int64(result.ExpiresIn),
		},
		Admin: dto.AdminResponse{
			ID:    result.AdminID,
			Email: result.Email,
		},
	}))
}
