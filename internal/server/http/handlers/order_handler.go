package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshfold/freshfold/internal/domain/model"
	"github.com/freshfold/freshfold/internal/server/http/dto"
	"github.com/freshfold/freshfold/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Missing required fields"})
		return
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), usecase.PlaceOrderInput{
		UserID:         req.UserID,
		ServiceKey:     req.ServicePackageKey,
		ServiceTitle:   req.ServiceTitle,
		DeliveryOption: model.DeliveryOption(req.DeliveryOption),
		Address:        req.Address,
	})
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OrderEnvelope{
		Success: true,
		Message: "Order created successfully",
		Order:   toOrderResponse(*order),
	})
}

// ListByUser handles GET /api/orders/user/:userId.
func (h *OrderHandler) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "User ID is required"})
		return
	}

	orders, err := h.facade.Orders(c.Request.Context(), userID)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, dto.OrdersEnvelope{Success: true, Orders: response, Total: len(response)})
}

// Get handles GET /api/orders/:orderId.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Order ID is required"})
		return
	}

	order, history, err := h.facade.Order(c.Request.Context(), orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderWithHistoryEnvelope{
		Success:       true,
		Order:         toOrderResponse(*order),
		StatusHistory: toHistoryResponse(history),
	})
}

// UpdateStatus handles PATCH /api/orders/:orderId/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Order ID is required"})
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Order ID and status are required"})
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), orderID, model.OrderStatus(req.Status), req.Notes)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderEnvelope{
		Success: true,
		Message: "Order status updated successfully",
		Order:   toOrderResponse(*order),
	})
}

// Cancel handles DELETE /api/orders/:orderId.
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Order ID is required"})
		return
	}

	// Body is optional for cancellation.
	var req dto.CancelOrderRequest
	_ = c.ShouldBindJSON(&req)

	order, err := h.facade.CancelOrder(c.Request.Context(), orderID, req.Reason)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderEnvelope{
		Success: true,
		Message: "Order cancelled successfully",
		Order:   toOrderResponse(*order),
	})
}
