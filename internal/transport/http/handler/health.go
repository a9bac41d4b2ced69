package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const maxStatusErrorLen = 80

// CollectionLister is the part of the document store the diagnostics need.
type CollectionLister interface {
	ListCollectionNames(ctx context.Context) ([]string, error)
}

type HealthHandler struct {
	store CollectionLister
}

type databaseStatus struct {
	Backend     string   `json:"backend"`
	Database    string   `json:"database"`
	Collections []string `json:"collections"`
}

func NewHealthHandler(store CollectionLister) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "HoloFrame Backend Running"})
}

// Test reports backend and database status. Store failures end up in the
// body, never in the status code.
func (h *HealthHandler) Test(c *gin.Context) {
	status := databaseStatus{
		Backend:     "✅ Running",
		Database:    "❌ Not Available",
		Collections: []string{},
	}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		names, err := h.store.ListCollectionNames(ctx)
		if err != nil {
			status.Database = "❌ Error: " + truncate(err.Error(), maxStatusErrorLen)
		} else {
			status.Database = "✅ Connected"
			status.Collections = names
		}
	}

	c.JSON(http.StatusOK, status)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
