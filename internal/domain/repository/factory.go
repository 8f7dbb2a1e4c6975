package repository

// Factory exposes repository accessors backed by a shared store.
type Factory interface {
	Orders() OrderRepository
	Notifications() NotificationRepository
	Recommendations() RecommendationRepository
}
