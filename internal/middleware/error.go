package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/zenkitchen/backend/internal/inventory"
	"github.com/pageza/zenkitchen/backend/internal/service"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatusFor maps a domain error to its HTTP status.
func StatusFor(err error) int {
	var validation *inventory.ValidationError
	var invalidState *inventory.InvalidStateError
	var collaborator *service.CollaboratorError
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &invalidState):
		return http.StatusConflict
	case errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrDraftNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	case errors.As(err, &collaborator):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler writes the last error attached with c.Error as a JSON
// response, unless the handler already wrote one.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := StatusFor(err)

		resp := ErrorResponse{Error: err.Error()}
		var validation *inventory.ValidationError
		if errors.As(err, &validation) {
			resp.Field = validation.Field
		}
		if status >= http.StatusInternalServerError {
			log.Printf("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
			if status == http.StatusInternalServerError {
				resp.Error = "internal server error"
			}
		}
		c.JSON(status, resp)
	}
}
