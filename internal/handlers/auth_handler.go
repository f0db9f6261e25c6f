package handlers

import (
	"errors"
	"net/http"

	"portfolio-api/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Login checks the admin credentials and issues a token
// POST /api/admin/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. Email and password are required.",
		})
		return
	}

	user, err := h.svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		h.fail(c, "session", "create", err)
		return
	}

	token, err := h.tokens.Generate(user.ID, user.Email)
	if err != nil {
		h.logger.Error("token-generate-failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate token",
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:   token,
		UserID:  user.ID,
		Email:   user.Email,
		Message: "Login successful",
	})
}
