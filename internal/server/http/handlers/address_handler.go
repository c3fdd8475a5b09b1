package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshfold/freshfold/internal/server/http/dto"
)

// AddressHandler manages delivery address endpoints.
type AddressHandler struct {
	facade AddressFacade
}

// NewAddressHandler constructs AddressHandler.
func NewAddressHandler(facade AddressFacade) *AddressHandler {
	return &AddressHandler{facade: facade}
}

// List handles GET /api/users/:userId/addresses.
func (h *AddressHandler) List(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "User ID is required"})
		return
	}

	addresses, err := h.facade.Addresses(c.Request.Context(), userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	response := make([]dto.AddressResponse, 0, len(addresses))
	for _, a := range addresses {
		response = append(response, dto.AddressResponse{ID: a.ID, Address: a.Address, IsDefault: a.IsDefault})
	}

	c.JSON(http.StatusOK, dto.StatusEnvelope{Status: "SUCCESS", Data: response})
}

// Add handles POST /api/users/:userId/addresses.
func (h *AddressHandler) Add(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "User ID is required"})
		return
	}

	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "invalid request body"})
		return
	}

	address, err := h.facade.AddAddress(c.Request.Context(), userID, req.Address, req.IsDefault)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.StatusEnvelope{
		Status:  "CREATED",
		Message: "Address added successfully",
		Data:    dto.AddressResponse{ID: address.ID, Address: address.Address, IsDefault: address.IsDefault},
	})
}

// Update handles PUT /api/users/:userId/addresses/:addressId.
func (h *AddressHandler) Update(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "User ID is required"})
		return
	}
	addressID, ok := pathID(c, "addressId")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "Address ID is required"})
		return
	}

	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "invalid request body"})
		return
	}

	if err := h.facade.UpdateAddress(c.Request.Context(), userID, addressID, req.Address, req.IsDefault); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusEnvelope{Status: "SUCCESS", Message: "Address updated successfully"})
}

// Delete handles DELETE /api/users/:userId/addresses/:addressId.
func (h *AddressHandler) Delete(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "User ID is required"})
		return
	}
	addressID, ok := pathID(c, "addressId")
	if !ok {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "Address ID is required"})
		return
	}

	if err := h.facade.DeleteAddress(c.Request.Context(), userID, addressID); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusEnvelope{Status: "SUCCESS", Message: "Address deleted successfully"})
}
