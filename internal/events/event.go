package events

import (
	"time"

	"github.com/QuiambaoMichael/safetap-backend/internal/domain"
)

// EventKind enumerates supported event identifiers.
type EventKind string

const (
	EventConcernCreated  EventKind = "concern_created"
	EventConcernResolved EventKind = "concern_resolved"
)

// Event is an immutable notification of a concern's creation or resolution.
// It carries a snapshot of the concern at the moment the transition
// committed; it is never persisted and never replayed for later joiners.
type Event struct {
	ID        string          `json:"id"`
	Kind      EventKind       `json:"kind"`
	Origin    string          `json:"origin,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Concern   ConcernSnapshot `json:"concern"`
}

// ConcernSnapshot is the wire shape of a concern inside an event.
type ConcernSnapshot struct {
	ID                       string               `json:"id"`
	Category                 string               `json:"category"`
	Description              string               `json:"description"`
	SupplementaryDescription string               `json:"supplementary_description,omitempty"`
	Location                 string               `json:"location"`
	SubmitterEmail           string               `json:"submitter_email"`
	SubmitterName            string               `json:"submitter_name"`
	Status                   domain.ConcernStatus `json:"status"`
	CreatedAt                time.Time            `json:"created_at"`
	UpdatedAt                time.Time            `json:"updated_at"`
}

// SnapshotOf copies the concern into its event wire shape.
func SnapshotOf(c *domain.Concern) ConcernSnapshot {
	return ConcernSnapshot{
		ID:                       c.ID,
		Category:                 c.Category,
		Description:              c.Description,
		SupplementaryDescription: c.SupplementaryDescription,
		Location:                 c.Location,
		SubmitterEmail:           c.SubmitterEmail,
		SubmitterName:            c.SubmitterName,
		Status:                   c.Status,
		CreatedAt:                c.CreatedAt,
		UpdatedAt:                c.UpdatedAt,
	}
}

// Publisher accepts committed events for fan-out. Implementations must be
// best-effort: a delivery failure never propagates back to the caller.
type Publisher interface {
	Publish(event Event)
}

// Tee publishes to several sinks in order.
type Tee []Publisher

// Publish forwards the event to every sink.
func (t Tee) Publish(event Event) {
	for _, p := range t {
		if p != nil {
			p.Publish(event)
		}
	}
}
