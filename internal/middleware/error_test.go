package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/zenkitchen/backend/internal/inventory"
	"github.com/pageza/zenkitchen/backend/internal/models"
	"github.com/pageza/zenkitchen/backend/internal/service"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", &inventory.ValidationError{Field: "usage_progress", Message: "cannot be lowered"}, http.StatusBadRequest, "usage_progress: cannot be lowered"},
		{"invalid state", &inventory.InvalidStateError{Op: "waste", ItemID: "a", Status: models.StatusConsumed}, http.StatusConflict, "cannot waste item a: status is consumed"},
		{"not found", fmt.Errorf("lookup: %w", service.ErrItemNotFound), http.StatusNotFound, "lookup: item not found"},
		{"collaborator", &service.CollaboratorError{Op: "update item", Err: errors.New("timeout")}, http.StatusBadGateway, "update item: timeout"},
		{"storage disabled", service.ErrStorageDisabled, http.StatusServiceUnavailable, "object storage is not configured"},
		{"unknown", errors.New("secret detail"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(ErrorHandler())
			router.GET("/", func(c *gin.Context) { _ = c.Error(tt.err) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.status, w.Code)
			var resp ErrorResponse
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.body, resp.Error)
		})
	}
}

func TestErrorHandlerKeepsWrittenResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/", func(c *gin.Context) {
		_ = c.Error(errors.New("ignored"))
		c.JSON(http.StatusTeapot, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}
