package domain

import "time"

// ConcernStatus enumerates lifecycle states for concerns.
type ConcernStatus string

const (
	ConcernStatusUnresolved ConcernStatus = "unresolved"
	ConcernStatusResolved   ConcernStatus = "resolved"
)

// Valid reports whether the status is a known lifecycle state.
func (s ConcernStatus) Valid() bool {
	return s == ConcernStatusUnresolved || s == ConcernStatusResolved
}

// Concern is the aggregate for filed concern reports. The only status
// transition is unresolved -> resolved; CreatedAt is assigned once and
// UpdatedAt is overwritten on every transition.
type Concern struct {
	ID                       string
	Category                 string
	Description              string
	SupplementaryDescription string
	Location                 string
	SubmitterEmail           string
	SubmitterName            string
	Status                   ConcernStatus
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// ConcernSummary is the projection returned by list views.
type ConcernSummary struct {
	ID        string
	Category  string
	Location  string
	Status    ConcernStatus
	CreatedAt time.Time
}

// Summary projects the concern into its list-view shape.
func (c *Concern) Summary() ConcernSummary {
	return ConcernSummary{
		ID:        c.ID,
		Category:  c.Category,
		Location:  c.Location,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}
