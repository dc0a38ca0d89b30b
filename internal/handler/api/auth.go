package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "licoreria-api/internal/handler/dto/request"
	resdto "licoreria-api/internal/handler/dto/response"
	"licoreria-api/internal/pkg/config"
	"licoreria-api/internal/pkg/cookie"
	"licoreria-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands  commands.AuthCommands
	cookieCfg     config.CookieConfig
	tokenDuration time.Duration
}

func NewAuthHandler(authCommands commands.AuthCommands, cookieCfg config.CookieConfig, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{
		authCommands:  authCommands,
		cookieCfg:     cookieCfg,
		tokenDuration: tokenDuration,
	}
}

// @Summary User login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
		case errors.Is(err, commands.ErrUserInactive):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account is inactive",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	cookie.SetAccessTokenCookie(c, h.cookieCfg, result.AccessToken, h.tokenDuration)

	c.JSON(http.StatusOK, resdto.LoginResponse{
		UserID:     result.UserID,
		Role:       result.Role.String(),
		CustomerID: result.CustomerID,
		EmployeeID: result.EmployeeID,
	})
}

// @Summary User logout
// @Description Clear the access token cookie
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessTokenCookie(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get the authenticated user's identity
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.MeResponse
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, resdto.MeResponse{
		UserID:     identity.UserID,
		Role:       identity.Role.String(),
		CustomerID: identity.CustomerID,
		EmployeeID: identity.EmployeeID,
	})
}
