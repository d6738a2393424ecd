package notify

import "time"

// Severity of a notice.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notice is a user facing message about a failed call.
type Notice struct {
	Severity  Severity  `json:"severity"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Status    int       `json:"status,omitempty"`
	Method    string    `json:"method,omitempty"`
	Path      string    `json:"path,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
