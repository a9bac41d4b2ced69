package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"holoframe-backend/internal/storage"
	"holoframe-backend/internal/transport/http/response"
)

type StaticHandler struct {
	files *storage.LocalStore
}

func NewStaticHandler(files *storage.LocalStore) *StaticHandler {
	return &StaticHandler{files: files}
}

// Serve streams an uploaded file. Unknown and unsafe names both get a 404.
func (h *StaticHandler) Serve(c *gin.Context) {
	path, err := h.files.Path(c.Param("fname"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Not found")
			return
		}
		log.Printf("serve static file failed: %v", err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "serve file failed")
		return
	}
	c.File(path)
}
