package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStats handles GET /api/admin/stats
func (h *Handler) GetStats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, "stats", "fetch", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// ClearCache drops every cached resource. Connected browsers learn about it
// through the cache_invalidated event and the timestamp in the response.
// POST /api/admin/cache
func (h *Handler) ClearCache(c *gin.Context) {
	h.svc.ClearCache()
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Cache cleared successfully",
		"timestamp": h.now().UnixMilli(),
	})
}
