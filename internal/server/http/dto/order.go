package dto

// PlaceOrderRequest is the body of POST /api/orders.
type PlaceOrderRequest struct {
	UserID int64 `json:"userId"`
}

// OrderResponse represents a created order.
type OrderResponse struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// ErrorResponse carries a client-facing failure reason.
type ErrorResponse struct {
	Error string `json:"error"`
}
