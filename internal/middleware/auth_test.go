package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/zenkitchen/backend/internal/middleware"
	"github.com/pageza/zenkitchen/backend/internal/mocks"
	"github.com/pageza/zenkitchen/backend/internal/types"
)

func newAuthRouter(validator middleware.TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.AuthMiddleware(validator))
	router.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": middleware.UserID(c)})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	validator := new(mocks.MockTokenValidator)
	validator.On("ValidateToken", "good").Return(&types.TokenClaims{UserID: "u1"}, nil)
	validator.On("ValidateToken", "bad").Return(nil, errors.New("invalid token"))
	router := newAuthRouter(validator)

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"bearer header", "/me", "Bearer good", http.StatusOK},
		{"query token", "/me?token=good", "", http.StatusOK},
		{"missing", "/me", "", http.StatusUnauthorized},
		{"malformed header", "/me", "Token good", http.StatusUnauthorized},
		{"rejected token", "/me", "Bearer bad", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"user_id":"u1"}`, w.Body.String())
			}
		})
	}
}
