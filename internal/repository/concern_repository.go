package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/QuiambaoMichael/safetap-backend/internal/domain"
)

// SortOrder controls list ordering by creation time.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ConcernFilter captures list query parameters. CreatedBefore is an
// exclusive upper bound; the query planner computes it from an inclusive
// end date.
type ConcernFilter struct {
	Status        *domain.ConcernStatus
	Category      *string
	CreatedFrom   *time.Time
	CreatedBefore *time.Time
	Order         SortOrder
}

// ConcernRepository encapsulates concern persistence. Absent rows are
// reported as pgx.ErrNoRows, distinct from I/O failures.
type ConcernRepository interface {
	Create(ctx context.Context, concern *domain.Concern) error
	GetByID(ctx context.Context, id string) (*domain.Concern, error)
	ListWithFilter(ctx context.Context, filter ConcernFilter) ([]domain.Concern, error)
	ListSummaries(ctx context.Context, filter ConcernFilter) ([]domain.ConcernSummary, error)
	Resolve(ctx context.Context, id string, at time.Time) (*domain.Concern, error)
}

type concernRepository struct {
	pool *pgxpool.Pool
}

// NewConcernRepository instantiates repository.
func NewConcernRepository(pool *pgxpool.Pool) ConcernRepository {
	return &concernRepository{pool: pool}
}

const concernColumns = `id, category, description, supplementary_description, location,
               submitter_email, submitter_name, status, created_at, updated_at`

// Create persists a new concern. The repository owns id allocation: every
// concern gets a freshly generated UUID rather than a store default.
func (r *concernRepository) Create(ctx context.Context, concern *domain.Concern) error {
	if concern.ID == "" {
		concern.ID = uuid.NewString()
	}
	const query = `
        INSERT INTO concerns (id, category, description, supplementary_description, location,
                              submitter_email, submitter_name, status, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := r.pool.Exec(ctx, query,
		concern.ID,
		concern.Category,
		concern.Description,
		concern.SupplementaryDescription,
		concern.Location,
		concern.SubmitterEmail,
		concern.SubmitterName,
		concern.Status,
		concern.CreatedAt,
		concern.UpdatedAt,
	)
	return err
}

func (r *concernRepository) GetByID(ctx context.Context, id string) (*domain.Concern, error) {
	query := fmt.Sprintf(`SELECT %s FROM concerns WHERE id=$1`, concernColumns)
	var concern domain.Concern
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&concern.ID,
		&concern.Category,
		&concern.Description,
		&concern.SupplementaryDescription,
		&concern.Location,
		&concern.SubmitterEmail,
		&concern.SubmitterName,
		&concern.Status,
		&concern.CreatedAt,
		&concern.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &concern, nil
}

// Resolve applies the unresolved -> resolved transition as a single
// conditional update, so two concurrent resolves cannot both win or
// interleave on updated_at. pgx.ErrNoRows means no unresolved row matched:
// either the concern is absent or it was already resolved.
func (r *concernRepository) Resolve(ctx context.Context, id string, at time.Time) (*domain.Concern, error) {
	query := fmt.Sprintf(`
        UPDATE concerns SET status=$1, updated_at=$2
        WHERE id=$3 AND status=$4
        RETURNING %s`, concernColumns)
	var concern domain.Concern
	if err := r.pool.QueryRow(ctx, query,
		domain.ConcernStatusResolved,
		at,
		id,
		domain.ConcernStatusUnresolved,
	).Scan(
		&concern.ID,
		&concern.Category,
		&concern.Description,
		&concern.SupplementaryDescription,
		&concern.Location,
		&concern.SubmitterEmail,
		&concern.SubmitterName,
		&concern.Status,
		&concern.CreatedAt,
		&concern.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &concern, nil
}

func (r *concernRepository) ListWithFilter(ctx context.Context, filter ConcernFilter) ([]domain.Concern, error) {
	query, args := buildListQuery(concernColumns, filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanConcerns(rows)
}

func (r *concernRepository) ListSummaries(ctx context.Context, filter ConcernFilter) ([]domain.ConcernSummary, error) {
	query, args := buildListQuery(`id, category, location, status, created_at`, filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.ConcernSummary{}
	for rows.Next() {
		var summary domain.ConcernSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.Category,
			&summary.Location,
			&summary.Status,
			&summary.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, summary)
	}
	return result, rows.Err()
}

// buildListQuery composes the conjunctive filter clauses and ordering into a
// single statement. The result set is fully materialized; there is no
// pagination cursor.
func buildListQuery(columns string, filter ConcernFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedBefore != nil {
		args = append(args, *filter.CreatedBefore)
		clauses = append(clauses, fmt.Sprintf("created_at < $%d", len(args)))
	}

	direction := "DESC"
	if filter.Order == SortAsc {
		direction = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM concerns WHERE %s ORDER BY created_at %s`,
		columns, strings.Join(clauses, " AND "), direction)
	return query, args
}

func scanConcerns(rows pgx.Rows) ([]domain.Concern, error) {
	result := []domain.Concern{}
	for rows.Next() {
		var concern domain.Concern
		if err := rows.Scan(
			&concern.ID,
			&concern.Category,
			&concern.Description,
			&concern.SupplementaryDescription,
			&concern.Location,
			&concern.SubmitterEmail,
			&concern.SubmitterName,
			&concern.Status,
			&concern.CreatedAt,
			&concern.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, concern)
	}
	return result, rows.Err()
}
