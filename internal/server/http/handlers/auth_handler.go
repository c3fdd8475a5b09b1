package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshfold/freshfold/internal/server/http/dto"
	"github.com/freshfold/freshfold/internal/server/http/middleware"
)

// AuthHandler processes registration, login and password recovery.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/users/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "invalid request body"})
		return
	}

	user, token, err := h.facade.Register(c.Request.Context(), req.Name, req.Email, req.Phone, req.Password, req.ConfirmPassword)
	if err != nil {
		respondUserError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusCreated, dto.StatusEnvelope{
		Status:  "CREATED",
		Message: "User registered successfully",
		Data:    toUserResponse(user),
	})
}

// Login handles POST /api/users/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "invalid request body"})
		return
	}

	user, token, err := h.facade.Authenticate(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		respondUserError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.StatusEnvelope{
		Status:  "SUCCESS",
		Message: "Login successful",
		Data:    toUserResponse(user),
	})
}

// ForgotPassword handles POST /api/users/forgot-password. The reset token is
// delivered out of band; the response never includes it.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "invalid request body"})
		return
	}

	if _, err := h.facade.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusEnvelope{Status: "SUCCESS", Message: "Password reset email sent successfully"})
}

// ResetPassword handles POST /api/users/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "invalid request body"})
		return
	}

	if err := h.facade.ResetPassword(c.Request.Context(), req.ResetToken, req.NewPassword, req.ConfirmPassword); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusEnvelope{Status: "SUCCESS", Message: "Password reset successfully"})
}
