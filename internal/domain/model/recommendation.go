package model

// Product is a catalog entry recommendations are drawn from.
type Product struct {
	ID   int64
	Name string
}

// Recommendation describes a product suggestion generated for a user.
// Immutable once stored.
type Recommendation struct {
	ID        int64
	UserID    int64
	ProductID int64
	Reason    string
}
