// Package notice defines the wire format of notification messages
// exchanged between the API service and the notifier service over
// RabbitMQ.
package notice

// Type classifies a notice for the client UI.
type Type string

const (
	TypeInfo    Type = "INFO"
	TypeSuccess Type = "SUCCESS"
	TypeWarning Type = "WARNING"
)

// RelatedTypeJob marks a notice as referring to a job.
const RelatedTypeJob = "JOB"

// Notice is a fire-and-forget notification request. The API publishes
// one per lifecycle transition; the notifier persists it.
type Notice struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Type        Type   `json:"type"`
	RelatedID   string `json:"related_id,omitempty"`
	RelatedType string `json:"related_type,omitempty"`
}

// Valid reports whether the notice carries the fields required for delivery.
func (n *Notice) Valid() bool {
	return n.UserID != "" && n.Title != "" && n.Message != ""
}
