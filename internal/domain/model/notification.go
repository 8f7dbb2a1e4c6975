package model

import "time"

// NotificationCategory distinguishes what a notification is about.
type NotificationCategory string

const (
	CategoryOrderUpdates   NotificationCategory = "orderUpdates"
	CategoryRecommendation NotificationCategory = "recommendation"
)

// Notification describes a message delivered to a user's inbox.
type Notification struct {
	ID       int64
	UserID   int64
	Category NotificationCategory
	Content  string
	SentAt   time.Time
	Read     bool
}
