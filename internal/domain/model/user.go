package model

// Preferences holds a user's opt-in flags for downstream side effects.
// Fetched on demand from the user service; treated as a point-in-time
// snapshot that may be stale by the time it is acted on.
type Preferences struct {
	Promotions      bool `json:"promotions"`
	OrderUpdates    bool `json:"orderUpdates"`
	Recommendations bool `json:"recommendations"`
}

// UserProfile is the subset of user-service data the core consumes.
type UserProfile struct {
	ID          int64       `json:"id"`
	Preferences Preferences `json:"preferences"`
}
