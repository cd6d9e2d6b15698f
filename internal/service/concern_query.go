package service

import (
	"strings"
	"time"

	"github.com/QuiambaoMichael/safetap-backend/internal/domain"
	"github.com/QuiambaoMichael/safetap-backend/internal/repository"
	apperrors "github.com/QuiambaoMichael/safetap-backend/pkg/util"
)

// ListQuery captures the optional list filters. All provided filters compose
// conjunctively. FromDate/ToDate are day-granularity bounds, both inclusive.
type ListQuery struct {
	Status    *domain.ConcernStatus
	Category  *string
	SortOrder string
	FromDate  *time.Time
	ToDate    *time.Time
}

// buildConcernFilter translates a list query into the repository filter.
// The inclusive end date becomes the half-open interval
// [FromDate, ToDate + 1 day), so a concern created at 23:59 on ToDate's
// calendar day is still included.
func buildConcernFilter(query ListQuery) (repository.ConcernFilter, error) {
	filter := repository.ConcernFilter{Order: repository.SortDesc}

	if query.Status != nil {
		if !query.Status.Valid() {
			return repository.ConcernFilter{}, apperrors.NewValidationError("unknown status", map[string]any{"status": *query.Status})
		}
		filter.Status = query.Status
	}
	if query.Category != nil && strings.TrimSpace(*query.Category) != "" {
		category := strings.TrimSpace(*query.Category)
		filter.Category = &category
	}
	switch strings.ToLower(strings.TrimSpace(query.SortOrder)) {
	case "", "desc":
	case "asc":
		filter.Order = repository.SortAsc
	default:
		return repository.ConcernFilter{}, apperrors.NewValidationError("sort order must be asc or desc", map[string]any{"sort": query.SortOrder})
	}
	if query.FromDate != nil {
		from := *query.FromDate
		filter.CreatedFrom = &from
	}
	if query.ToDate != nil {
		before := query.ToDate.AddDate(0, 0, 1)
		filter.CreatedBefore = &before
	}
	if filter.CreatedFrom != nil && filter.CreatedBefore != nil && !filter.CreatedFrom.Before(*filter.CreatedBefore) {
		return repository.ConcernFilter{}, apperrors.NewValidationError("from date is after to date", nil)
	}

	return filter, nil
}
