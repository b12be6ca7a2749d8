package notification

import "time"

// Record is a single in-app notification. Appended to by the push channel,
// mutated only through mark-as-read.
type Record struct {
	ID        string    `json:"_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Event names emitted by the remote socket channel.
const (
	EventNew            = "notification:new"
	EventProductDeleted = "loan-product:deleted"
)
