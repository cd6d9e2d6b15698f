package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/QuiambaoMichael/safetap-backend/internal/domain"
)

func TestBuildListQueryNoFilters(t *testing.T) {
	query, args := buildListQuery("id, status", ConcernFilter{})
	require.Equal(t, `SELECT id, status FROM concerns WHERE 1=1 ORDER BY created_at DESC`, query)
	require.Empty(t, args)
}

func TestBuildListQueryComposesConjunctively(t *testing.T) {
	status := domain.ConcernStatusUnresolved
	category := "Clinic"
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)

	query, args := buildListQuery("id", ConcernFilter{
		Status:        &status,
		Category:      &category,
		CreatedFrom:   &from,
		CreatedBefore: &before,
		Order:         SortAsc,
	})

	require.Equal(t,
		`SELECT id FROM concerns WHERE 1=1 AND status=$1 AND category=$2 AND created_at >= $3 AND created_at < $4 ORDER BY created_at ASC`,
		query)
	require.Equal(t, []any{status, category, from, before}, args)
}

func TestBuildListQueryUpperBoundIsExclusive(t *testing.T) {
	before := time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)
	query, args := buildListQuery("id", ConcernFilter{CreatedBefore: &before})
	require.Contains(t, query, "created_at < $1")
	require.NotContains(t, query, "created_at <=")
	require.Equal(t, []any{before}, args)
}

func TestBuildListQueryOrderDirection(t *testing.T) {
	query, _ := buildListQuery("id", ConcernFilter{Order: SortAsc})
	require.Contains(t, query, "ORDER BY created_at ASC")

	// Anything but asc falls back to newest-first.
	query, _ = buildListQuery("id", ConcernFilter{})
	require.Contains(t, query, "ORDER BY created_at DESC")
	query, _ = buildListQuery("id", ConcernFilter{Order: SortOrder("bogus")})
	require.Contains(t, query, "ORDER BY created_at DESC")
}
