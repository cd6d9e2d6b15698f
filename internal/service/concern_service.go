package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/QuiambaoMichael/safetap-backend/internal/domain"
	"github.com/QuiambaoMichael/safetap-backend/internal/events"
	"github.com/QuiambaoMichael/safetap-backend/internal/observability"
	"github.com/QuiambaoMichael/safetap-backend/internal/repository"
	apperrors "github.com/QuiambaoMichael/safetap-backend/pkg/util"
)

// IdentityLookup checks a submitter against the registered user directory.
// The name match is exact and case-sensitive.
type IdentityLookup interface {
	ExistsByEmailAndName(ctx context.Context, email, name string) (bool, error)
}

// ConcernService owns the concern lifecycle: validated submission, the
// unresolved -> resolved transition, and read paths. Events are emitted only
// after a transition has committed; a notification failure never rolls back
// state.
type ConcernService struct {
	concerns  repository.ConcernRepository
	identity  IdentityLookup
	publisher events.Publisher
	metrics   *observability.Metrics
	now       func() time.Time
}

// ConcernDependencies bundles collaborators for the concern service.
type ConcernDependencies struct {
	ConcernRepo repository.ConcernRepository
	Identity    IdentityLookup
	Publisher   events.Publisher
	Metrics     *observability.Metrics
}

// SubmitConcernInput describes a submission payload. All fields except
// SupplementaryDescription are required.
type SubmitConcernInput struct {
	Category                 string
	Description              string
	SupplementaryDescription string
	Location                 string
	SubmitterEmail           string
	SubmitterName            string
}

// NewConcernService constructs the service.
func NewConcernService(deps ConcernDependencies) *ConcernService {
	return &ConcernService{
		concerns:  deps.ConcernRepo,
		identity:  deps.Identity,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		now:       time.Now,
	}
}

// Submit validates the input, cross-checks the submitter against the user
// directory and persists a new unresolved concern. The created event is
// emitted only once the write has succeeded.
func (s *ConcernService) Submit(ctx context.Context, input SubmitConcernInput) (*domain.Concern, error) {
	input.Category = strings.TrimSpace(input.Category)
	input.Description = strings.TrimSpace(input.Description)
	input.SupplementaryDescription = strings.TrimSpace(input.SupplementaryDescription)
	input.Location = strings.TrimSpace(input.Location)
	input.SubmitterEmail = strings.TrimSpace(input.SubmitterEmail)
	input.SubmitterName = strings.TrimSpace(input.SubmitterName)

	missing := []string{}
	if input.Category == "" {
		missing = append(missing, "category")
	}
	if input.Description == "" {
		missing = append(missing, "description")
	}
	if input.Location == "" {
		missing = append(missing, "location")
	}
	if input.SubmitterEmail == "" {
		missing = append(missing, "submitter_email")
	}
	if input.SubmitterName == "" {
		missing = append(missing, "submitter_name")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("required fields missing", map[string]any{"missing": missing})
	}

	found, err := s.identity.ExistsByEmailAndName(ctx, input.SubmitterEmail, input.SubmitterName)
	if err != nil {
		return nil, apperrors.NewStoreFailure(err)
	}
	if !found {
		return nil, apperrors.NewNotFound("submitter identity", map[string]any{"email": input.SubmitterEmail})
	}

	now := s.now()
	concern := &domain.Concern{
		Category:                 input.Category,
		Description:              input.Description,
		SupplementaryDescription: input.SupplementaryDescription,
		Location:                 input.Location,
		SubmitterEmail:           input.SubmitterEmail,
		SubmitterName:            input.SubmitterName,
		Status:                   domain.ConcernStatusUnresolved,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	if err := s.concerns.Create(ctx, concern); err != nil {
		return nil, apperrors.NewStoreFailure(err)
	}

	s.metrics.RecordConcern("submitted")
	s.publish(events.EventConcernCreated, concern)
	return concern, nil
}

// Resolve applies the unresolved -> resolved transition. Resolving an
// already-resolved concern is an idempotent no-op: the current state is
// returned unchanged, updated_at keeps the first transition's time and no
// second event is emitted. Under concurrent resolves the repository's
// conditional update guarantees exactly one winner and one event.
func (s *ConcernService) Resolve(ctx context.Context, id string) (*domain.Concern, error) {
	concern, err := s.concerns.Resolve(ctx, id, s.now())
	if err == nil {
		s.metrics.RecordConcern("resolved")
		s.publish(events.EventConcernResolved, concern)
		return concern, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewStoreFailure(err)
	}

	// No unresolved row matched: distinguish "absent" from "already resolved".
	current, err := s.concerns.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("concern", map[string]any{"id": id})
		}
		return nil, apperrors.NewStoreFailure(err)
	}
	return current, nil
}

// GetByID returns the full-detail concern. Read-only, emits no events.
func (s *ConcernService) GetByID(ctx context.Context, id string) (*domain.Concern, error) {
	concern, err := s.concerns.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("concern", map[string]any{"id": id})
		}
		return nil, apperrors.NewStoreFailure(err)
	}
	return concern, nil
}

// List returns list-view summaries matching the query.
func (s *ConcernService) List(ctx context.Context, query ListQuery) ([]domain.ConcernSummary, error) {
	filter, err := buildConcernFilter(query)
	if err != nil {
		return nil, err
	}
	summaries, err := s.concerns.ListSummaries(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStoreFailure(err)
	}
	return summaries, nil
}

// ListDetailed returns full concern rows matching the query.
func (s *ConcernService) ListDetailed(ctx context.Context, query ListQuery) ([]domain.Concern, error) {
	filter, err := buildConcernFilter(query)
	if err != nil {
		return nil, err
	}
	concerns, err := s.concerns.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStoreFailure(err)
	}
	return concerns, nil
}

func (s *ConcernService) publish(kind events.EventKind, concern *domain.Concern) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(events.Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		Timestamp: concern.UpdatedAt,
		Concern:   events.SnapshotOf(concern),
	})
}
