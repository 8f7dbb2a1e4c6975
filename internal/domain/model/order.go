package model

// OrderStatus describes fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

// Order describes a purchase order owned by a user. Status only moves
// forward along placed, shipped, delivered; delivered is terminal.
type Order struct {
	ID     int64
	UserID int64
	Status OrderStatus
}
