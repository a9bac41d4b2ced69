package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"holoframe-backend/internal/app"
	"holoframe-backend/internal/model"
	"holoframe-backend/internal/transport/http/response"
)

type GalleryHandler struct {
	gallery  *app.GalleryService
	maxBytes int64
}

// NewGalleryHandler creates the bootstrap and upload handlers. A maxBytes of
// zero disables the upload size limit.
func NewGalleryHandler(gallery *app.GalleryService, maxBytes int64) *GalleryHandler {
	return &GalleryHandler{gallery: gallery, maxBytes: maxBytes}
}

func (h *GalleryHandler) Bootstrap(c *gin.Context) {
	result, err := h.gallery.Bootstrap(c.Request.Context(), c.Query("link"))
	if err != nil {
		writeServiceError(c, err, "bootstrap failed")
		return
	}
	response.JSON(c, result)
}

// Upload accepts a multipart form with "file", optional "caption" and
// optional "is_public" (default true).
func (h *GalleryHandler) Upload(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodePayloadTooLarge, "upload too large")
			return
		}
		response.ValidationError(c, map[string]string{"file": "field required"})
		return
	}

	isPublic := true
	// An empty value counts as omitted.
	if raw := strings.TrimSpace(c.PostForm("is_public")); raw != "" {
		parsed, valid := parseFormBool(raw)
		if !valid {
			response.ValidationError(c, map[string]string{"is_public": "value could not be parsed to a boolean"})
			return
		}
		isPublic = parsed
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "failed to open uploaded file")
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "failed to read uploaded file")
		return
	}

	photo, err := h.gallery.UploadPhoto(c.Request.Context(), app.UploadInput{
		Filename: fileHeader.Filename,
		Content:  content,
		Caption:  c.PostForm("caption"),
		IsPublic: isPublic,
	})
	if err != nil {
		writeServiceError(c, err, "upload failed")
		return
	}

	response.JSON(c, gin.H{"photo": photo})
}

func writeServiceError(c *gin.Context, err error, message string) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationError(c, verr.Fields)
	case errors.Is(err, app.ErrUserNotInitialized):
		response.Error(c, http.StatusBadRequest, response.CodeUserNotInitialized, "User not initialized")
	default:
		log.Printf("%s: %v", message, err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, message)
	}
}

// parseFormBool accepts the usual spellings of a form checkbox value.
func parseFormBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, true
	case "0", "false", "f", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
