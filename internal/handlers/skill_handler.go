package handlers

import (
	"net/http"

	"portfolio-api/internal/portfolio"

	"github.com/gin-gonic/gin"
)

// GetSkills handles GET /api/skills
func (h *Handler) GetSkills(c *gin.Context) {
	res := h.svc.Skills(c.Request.Context())
	setSource(c, res.Source)
	c.JSON(http.StatusOK, res.Value)
}

// GetSkill handles GET /api/skills/:id
func (h *Handler) GetSkill(c *gin.Context) {
	sk, err := h.svc.Skill(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "skill", "fetch", err)
		return
	}
	c.JSON(http.StatusOK, sk)
}

// CreateSkill handles POST /api/skills
func (h *Handler) CreateSkill(c *gin.Context) {
	var req portfolio.SkillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sk, err := h.svc.CreateSkill(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "skill", "create", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Skill created", "data": sk})
}

// UpdateSkill handles PUT /api/skills/:id
func (h *Handler) UpdateSkill(c *gin.Context) {
	var req portfolio.SkillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sk, err := h.svc.UpdateSkill(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, "skill", "update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Skill updated", "data": sk})
}

// DeleteSkill handles DELETE /api/skills/:id
func (h *Handler) DeleteSkill(c *gin.Context) {
	if err := h.svc.DeleteSkill(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "skill", "delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Skill deleted"})
}
