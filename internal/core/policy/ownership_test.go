package policy

import (
	"testing"
	"time"

	"github.com/staffdesk/employee-api/internal/core/domain"
)

func TestCanRead(t *testing.T) {
	record := &domain.Employee{CreatedBy: "bob"}

	cases := []struct {
		name     string
		identity domain.Identity
		want     bool
	}{
		{"owner", domain.Identity{Username: "bob", Role: domain.RoleUser}, true},
		{"admin non-owner", domain.Identity{Username: "root", Role: domain.RoleAdmin}, true},
		{"non-owner", domain.Identity{Username: "carol", Role: domain.RoleUser}, false},
		{"admin owner", domain.Identity{Username: "bob", Role: domain.RoleAdmin}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanRead(tc.identity, record); got != tc.want {
				t.Fatalf("CanRead(%+v) = %v, want %v", tc.identity, got, tc.want)
			}
			// Read and mutate obey the same law.
			if got := CanMutate(tc.identity, record); got != tc.want {
				t.Fatalf("CanMutate(%+v) = %v, want %v", tc.identity, got, tc.want)
			}
		})
	}
}

func TestScopeListQuery(t *testing.T) {
	admin := domain.Identity{Username: "root", Role: domain.RoleAdmin}
	if f := ScopeListQuery(admin); f.CreatedBy != "" {
		t.Fatalf("admin filter should be unrestricted, got %+v", f)
	}

	user := domain.Identity{Username: "bob", Role: domain.RoleUser}
	if f := ScopeListQuery(user); f.CreatedBy != "bob" {
		t.Fatalf("user filter should scope to creator, got %+v", f)
	}
}

func TestStampOnCreate_OverwritesCallerValues(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	record := &domain.Employee{
		Name:      "John Doe",
		CreatedBy: "mallory",
		CreatedAt: now.Add(-time.Hour),
		UpdatedAt: now.Add(-time.Hour),
	}

	StampOnCreate(domain.Identity{Username: "bob", Role: domain.RoleUser}, record, now)

	if record.CreatedBy != "bob" {
		t.Fatalf("expected createdBy forced to bob, got %q", record.CreatedBy)
	}
	if !record.CreatedAt.Equal(now) || !record.UpdatedAt.Equal(now) {
		t.Fatalf("expected timestamps forced to %v, got %v / %v", now, record.CreatedAt, record.UpdatedAt)
	}
}

func TestStampOnUpdate(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	update := domain.EmployeeUpdate{}

	StampOnUpdate(&update, now)

	if !update.UpdatedAt.Equal(now) {
		t.Fatalf("expected updatedAt %v, got %v", now, update.UpdatedAt)
	}
}
