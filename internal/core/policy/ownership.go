// Package policy holds the ownership authorization rules. Every function
// is a pure decision over an identity and a record: no I/O, no clock reads,
// no logging. The service layer calls these identically for read, update
// and delete paths.
package policy

import (
	"time"

	"github.com/staffdesk/employee-api/internal/core/domain"
	"github.com/staffdesk/employee-api/internal/core/ports"
)

// CanRead reports whether identity may see the record: admins see
// everything, users see only records they created.
func CanRead(identity domain.Identity, record *domain.Employee) bool {
	return identity.IsAdmin() || record.CreatedBy == identity.Username
}

// CanMutate reports whether identity may update or delete the record.
// The rule is identical to CanRead.
func CanMutate(identity domain.Identity, record *domain.Employee) bool {
	return CanRead(identity, record)
}

// ScopeListQuery builds the list filter for identity: unrestricted for
// admins, restricted to own records otherwise.
func ScopeListQuery(identity domain.Identity) ports.EmployeeFilter {
	if identity.IsAdmin() {
		return ports.EmployeeFilter{}
	}
	return ports.EmployeeFilter{CreatedBy: identity.Username}
}

// StampOnCreate forces ownership and timestamps on a new record,
// overwriting any caller-supplied values.
func StampOnCreate(identity domain.Identity, record *domain.Employee, now time.Time) {
	record.CreatedBy = identity.Username
	record.CreatedAt = now
	record.UpdatedAt = now
}

// StampOnUpdate refreshes the update timestamp on a partial update.
// EmployeeUpdate cannot carry CreatedBy, so ownership stays immutable by
// construction.
func StampOnUpdate(update *domain.EmployeeUpdate, now time.Time) {
	update.UpdatedAt = now
}
