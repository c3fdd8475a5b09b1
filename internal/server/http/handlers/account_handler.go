package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshfold/freshfold/internal/domain/model"
	"github.com/freshfold/freshfold/internal/server/http/dto"
)

// AccountHandler manages profile, settings and push token endpoints.
type AccountHandler struct {
	facade AccountFacade
}

// NewAccountHandler constructs AccountHandler.
func NewAccountHandler(facade AccountFacade) *AccountHandler {
	return &AccountHandler{facade: facade}
}

// Profile handles GET /api/users/:userId/profile.
func (h *AccountHandler) Profile(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "User ID is required"})
		return
	}

	user, err := h.facade.Profile(c.Request.Context(), userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusEnvelope{Status: "SUCCESS", Data: toUserResponse(user)})
}

// UpdateProfile handles PUT /api/users/:userId/profile.
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "User ID is required"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "invalid request body"})
		return
	}

	update := model.ProfileUpdate{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		ProfilePictureURL: req.ProfilePictureURL,
	}
	if err := h.facade.UpdateProfile(c.Request.Context(), userID, update); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusEnvelope{Status: "SUCCESS", Message: "Profile updated successfully"})
}

// ChangePassword handles POST /api/users/:userId/change-password.
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "User ID is required"})
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "invalid request body"})
		return
	}

	if err := h.facade.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusEnvelope{Status: "SUCCESS", Message: "Password changed successfully"})
}

// UpdateSettings handles PUT /api/users/:userId/settings.
func (h *AccountHandler) UpdateSettings(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "User ID is required"})
		return
	}

	var req dto.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "invalid request body"})
		return
	}

	update := model.SettingsUpdate{
		DarkMode:             req.DarkMode,
		NotificationsEnabled: req.NotificationsEnabled,
	}
	if err := h.facade.UpdateSettings(c.Request.Context(), userID, update); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusEnvelope{Status: "SUCCESS", Message: "Settings updated successfully"})
}

// RegisterPushToken handles POST /api/users/:userId/push-token.
func (h *AccountHandler) RegisterPushToken(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "User ID is required"})
		return
	}

	var req dto.PushTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PushToken == "" {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "User ID and push_token are required"})
		return
	}

	if err := h.facade.RegisterPushToken(c.Request.Context(), userID, req.PushToken); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusEnvelope{Status: "SUCCESS", Message: "Push token registered"})
}
