package model

// Item is a thing its owner shares for booking. Available gates new
// bookings; OwnerID is set at creation and never changed through the API.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"-"`
	RequestID   *int64 `json:"requestId,omitempty"`
}
