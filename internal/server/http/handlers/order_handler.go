package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ordermesh/ordermesh/internal/domain/errors"
	"github.com/ordermesh/ordermesh/internal/server/http/dto"
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
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "userId is required"})
		return
	}

	order, err := h.facade.Place(c.Request.Context(), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "user does not exist"})
		case errors.Is(err, domainErrors.ErrDependencyUnavailable):
			c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "dependency unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.OrderResponse{
		ID:     order.ID,
		UserID: order.UserID,
		Status: string(order.Status),
	})
}
