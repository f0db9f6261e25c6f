package handlers

import (
	"net/http"

	"portfolio-api/internal/portfolio"

	"github.com/gin-gonic/gin"
)

// GetPublishedProjects handles GET /api/projects
func (h *Handler) GetPublishedProjects(c *gin.Context) {
	res := h.svc.PublishedProjects(c.Request.Context())
	setSource(c, res.Source)
	c.JSON(http.StatusOK, res.Value)
}

// GetProjectBySlug returns a published project with rendered description.
// GET /api/projects/:slug
func (h *Handler) GetProjectBySlug(c *gin.Context) {
	p, err := h.svc.PublishedProject(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, "project", "fetch", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetAllProjects lists drafts and published projects for the admin UI.
// GET /api/admin/projects
func (h *Handler) GetAllProjects(c *gin.Context) {
	projects, err := h.svc.AllProjects(c.Request.Context())
	if err != nil {
		h.fail(c, "projects", "fetch", err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetProject handles GET /api/admin/projects/:id
func (h *Handler) GetProject(c *gin.Context) {
	p, err := h.svc.Project(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "project", "fetch", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateProject handles POST /api/admin/projects
func (h *Handler) CreateProject(c *gin.Context) {
	var req portfolio.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.svc.CreateProject(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "project", "create", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Project created", "data": p})
}

// UpdateProject handles PUT /api/admin/projects/:id
func (h *Handler) UpdateProject(c *gin.Context) {
	var req portfolio.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.svc.UpdateProject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, "project", "update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Project updated", "data": p})
}

// DeleteProject handles DELETE /api/admin/projects/:id
func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.svc.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "project", "delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Project deleted"})
}
