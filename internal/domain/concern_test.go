package domain

import (
	"testing"
	"time"
)

func TestConcernStatusValid(t *testing.T) {
	cases := []struct {
		status ConcernStatus
		want   bool
	}{
		{ConcernStatusUnresolved, true},
		{ConcernStatusResolved, true},
		{ConcernStatus(""), false},
		{ConcernStatus("closed"), false},
		{ConcernStatus("Resolved"), false},
	}
	for _, tc := range cases {
		if got := tc.status.Valid(); got != tc.want {
			t.Errorf("Valid(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestConcernSummaryProjection(t *testing.T) {
	created := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	concern := Concern{
		ID:             "c-1",
		Category:       "Clinic",
		Description:    "No nurse on duty",
		Location:       "Bldg A",
		SubmitterEmail: "a@x.com",
		SubmitterName:  "Ann",
		Status:         ConcernStatusUnresolved,
		CreatedAt:      created,
		UpdatedAt:      created,
	}

	summary := concern.Summary()
	if summary.ID != "c-1" || summary.Category != "Clinic" || summary.Location != "Bldg A" {
		t.Fatalf("unexpected summary: %#v", summary)
	}
	if summary.Status != ConcernStatusUnresolved {
		t.Fatalf("unexpected status: %s", summary.Status)
	}
	if !summary.CreatedAt.Equal(created) {
		t.Fatalf("unexpected created_at: %s", summary.CreatedAt)
	}
}

func TestUserRoleValid(t *testing.T) {
	if !RoleUser.Valid() || !RoleStaff.Valid() {
		t.Fatal("known roles must be valid")
	}
	if UserRole("ADMIN").Valid() {
		t.Fatal("unknown role must be invalid")
	}
}
