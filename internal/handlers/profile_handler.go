package handlers

import (
	"net/http"

	"portfolio-api/internal/middleware"
	"portfolio-api/internal/portfolio"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the public profile; defaults are served on failure.
// GET /api/user/profile
func (h *Handler) GetProfile(c *gin.Context) {
	res := h.svc.Profile(c.Request.Context())
	setSource(c, res.Source)
	c.JSON(http.StatusOK, res.Value)
}

// UpdateProfile updates the site owner's profile fields.
// PUT /api/admin/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req portfolio.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), c.GetString(middleware.ContextEmail), req)
	if err != nil {
		h.fail(c, "profile", "update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated", "data": user})
}
