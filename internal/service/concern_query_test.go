package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/QuiambaoMichael/safetap-backend/internal/domain"
	"github.com/QuiambaoMichael/safetap-backend/internal/repository"
)

func TestBuildConcernFilterDefaults(t *testing.T) {
	filter, err := buildConcernFilter(ListQuery{})
	require.NoError(t, err)
	require.Nil(t, filter.Status)
	require.Nil(t, filter.Category)
	require.Nil(t, filter.CreatedFrom)
	require.Nil(t, filter.CreatedBefore)
	require.Equal(t, repository.SortDesc, filter.Order)
}

func TestBuildConcernFilterHalfOpenDateInterval(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	filter, err := buildConcernFilter(ListQuery{FromDate: &from, ToDate: &to})
	require.NoError(t, err)
	require.True(t, filter.CreatedFrom.Equal(from), "lower bound is inclusive")
	require.True(t, filter.CreatedBefore.Equal(to.AddDate(0, 0, 1)), "upper bound is to_date + 1 day, exclusive")
}

func TestBuildConcernFilterSortOrder(t *testing.T) {
	filter, err := buildConcernFilter(ListQuery{SortOrder: "ASC"})
	require.NoError(t, err)
	require.Equal(t, repository.SortAsc, filter.Order)

	filter, err = buildConcernFilter(ListQuery{SortOrder: "desc"})
	require.NoError(t, err)
	require.Equal(t, repository.SortDesc, filter.Order)

	_, err = buildConcernFilter(ListQuery{SortOrder: "newest"})
	require.Error(t, err)
}

func TestBuildConcernFilterRejectsUnknownStatus(t *testing.T) {
	status := domain.ConcernStatus("pending")
	_, err := buildConcernFilter(ListQuery{Status: &status})
	require.Error(t, err)
}

func TestBuildConcernFilterRejectsInvertedRange(t *testing.T) {
	from := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	_, err := buildConcernFilter(ListQuery{FromDate: &from, ToDate: &to})
	require.Error(t, err)
}

func TestBuildConcernFilterTrimsCategory(t *testing.T) {
	category := "  Clinic  "
	filter, err := buildConcernFilter(ListQuery{Category: &category})
	require.NoError(t, err)
	require.Equal(t, "Clinic", *filter.Category)

	blank := "   "
	filter, err = buildConcernFilter(ListQuery{Category: &blank})
	require.NoError(t, err)
	require.Nil(t, filter.Category, "blank category means no filter")
}
