package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// maxImageBytes bounds uploaded and recognized images.
const maxImageBytes = 10 << 20

// confirmed reports whether a destructive request carries ?confirm=true.
// It writes the 428 response itself when it does not.
func confirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	if !ok {
		c.JSON(http.StatusPreconditionRequired, gin.H{"error": "deletion must be confirmed with ?confirm=true"})
	}
	return ok
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// readFormFile reads a multipart file field and its declared content type.
func readFormFile(c *gin.Context, field string) ([]byte, *multipart.FileHeader, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil, fmt.Errorf("missing %s file: %w", field, err)
	}
	if header.Size > maxImageBytes {
		return nil, nil, fmt.Errorf("%s exceeds %d bytes", field, maxImageBytes)
	}
	f, err := header.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", field, err)
	}
	return data, header, nil
}

// contentType prefers the declared part type and falls back to sniffing.
func contentType(header *multipart.FileHeader, data []byte) string {
	if ct := header.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	return http.DetectContentType(data)
}
