package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/freshfold/freshfold/internal/domain/errors"
	"github.com/freshfold/freshfold/internal/domain/model"
	pkgAuth "github.com/freshfold/freshfold/internal/pkg/auth"
	"github.com/freshfold/freshfold/internal/server/http/dto"
	"github.com/freshfold/freshfold/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// respondOrderError maps domain errors to the {error} envelope used by the
// order endpoints.
func respondOrderError(c *gin.Context, err error) {
	var invalidOp domainErrors.InvalidOperationError
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Order not found"})
	case errors.Is(err, domainErrors.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid status"})
	case errors.As(err, &invalidOp):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: invalidOp.Error()})
	case errors.Is(err, domainErrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	}
}

// respondUserError maps domain errors to the {status, message} envelope used
// by the user endpoints.
func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrValidation), errors.Is(err, domainErrors.ErrInvalidResetToken):
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.StatusEnvelope{Status: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, dto.StatusEnvelope{Status: "CONFLICT", Message: "already registered"})
	case errors.Is(err, domainErrors.ErrInvalidCredentials), errors.Is(err, pkgAuth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, dto.StatusEnvelope{Status: "UNAUTHORIZED", Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.StatusEnvelope{Status: "ERROR", Message: "internal server error"})
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:             order.ID,
		UserID:         order.UserID,
		ServiceKey:     order.ServiceKey,
		ServiceTitle:   order.ServiceTitle,
		DeliveryOption: string(order.DeliveryOption),
		DeliveryFee:    order.DeliveryFee,
		TotalAmount:    order.TotalAmount,
		Address:        order.Address,
		Status:         string(order.Status),
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}

func toHistoryResponse(entries []model.StatusHistoryEntry) []dto.HistoryEntryResponse {
	result := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, dto.HistoryEntryResponse{
			Status:    string(e.Status),
			ChangedAt: e.ChangedAt,
			Notes:     e.Notes,
		})
	}
	return result
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:                   user.ID,
		Name:                 user.Name,
		Email:                user.Email,
		Phone:                user.Phone,
		ProfilePictureURL:    user.ProfilePictureURL,
		DarkMode:             user.DarkMode,
		NotificationsEnabled: user.NotificationsEnabled,
	}
}
