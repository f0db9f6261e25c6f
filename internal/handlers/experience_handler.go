package handlers

import (
	"net/http"

	"portfolio-api/internal/portfolio"

	"github.com/gin-gonic/gin"
)

// GetExperience handles GET /api/experience
func (h *Handler) GetExperience(c *gin.Context) {
	res := h.svc.Experience(c.Request.Context())
	setSource(c, res.Source)
	c.JSON(http.StatusOK, res.Value)
}

// GetExperienceByID handles GET /api/experience/:id
func (h *Handler) GetExperienceByID(c *gin.Context) {
	e, err := h.svc.ExperienceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "experience", "fetch", err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// CreateExperience handles POST /api/experience
func (h *Handler) CreateExperience(c *gin.Context) {
	var req portfolio.ExperienceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := h.svc.CreateExperience(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "experience", "create", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Experience created", "data": e})
}

// UpdateExperience handles PUT /api/experience/:id
func (h *Handler) UpdateExperience(c *gin.Context) {
	var req portfolio.ExperienceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := h.svc.UpdateExperience(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, "experience", "update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Experience updated", "data": e})
}

// DeleteExperience handles DELETE /api/experience/:id
func (h *Handler) DeleteExperience(c *gin.Context) {
	if err := h.svc.DeleteExperience(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "experience", "delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Experience deleted"})
}
