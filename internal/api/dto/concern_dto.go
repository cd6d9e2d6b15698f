package dto

import (
	"time"

	"github.com/QuiambaoMichael/safetap-backend/internal/domain"
)

// SubmitConcernRequest payload.
type SubmitConcernRequest struct {
	Category                 string `json:"category"`
	Description              string `json:"description"`
	SupplementaryDescription string `json:"supplementary_description"`
	Location                 string `json:"location"`
	SubmitterEmail           string `json:"submitter_email"`
	SubmitterName            string `json:"submitter_name"`
}

// ConcernSummaryResponse is the list-view projection.
type ConcernSummaryResponse struct {
	ID        string               `json:"id"`
	Category  string               `json:"category"`
	Location  string               `json:"location"`
	Status    domain.ConcernStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}

// ConcernDetailResponse carries every field for single-concern lookup.
type ConcernDetailResponse struct {
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
