package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/zenkitchen/backend/internal/middleware"
	"github.com/pageza/zenkitchen/backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/anonymous", h.Anonymous)
		auth.POST("/refresh", middleware.AuthMiddleware(h.authService), h.Refresh)
	}
}

// Anonymous starts a new session with a fresh user id.
func (h *AuthHandler) Anonymous(c *gin.Context) {
	session, err := h.authService.IssueAnonymous()
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Refresh renews the caller's token for the same user id.
func (h *AuthHandler) Refresh(c *gin.Context) {
	session, err := h.authService.Issue(middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, session)
}
