package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/zenkitchen/backend/internal/middleware"
	"github.com/pageza/zenkitchen/backend/internal/service"
)

type UploadHandler struct {
	uploader service.Uploader
}

// NewUploadHandler accepts a nil uploader; uploads then answer 503.
func NewUploadHandler(uploader service.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/uploads", h.Upload)
}

// Upload stores an item or recipe photo and returns its URL.
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.uploader == nil {
		_ = c.Error(service.ErrStorageDisabled)
		return
	}

	data, header, err := readFormFile(c, "file")
	if err != nil {
		badRequest(c, err)
		return
	}
	ct := contentType(header, data)
	if !service.IsImageType(ct) {
		badRequest(c, fmt.Errorf("unsupported content type %q", ct))
		return
	}

	key := service.ObjectKey(middleware.UserID(c), header.Filename, ct)
	url, err := h.uploader.Upload(c.Request.Context(), key, ct, data)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url, "key": key})
}
