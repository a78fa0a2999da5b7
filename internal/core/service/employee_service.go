package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffdesk/employee-api/internal/core/domain"
	"github.com/staffdesk/employee-api/internal/core/policy"
	"github.com/staffdesk/employee-api/internal/core/ports"
)

// EmployeeService implements record use-cases, scoped by the ownership
// policy. Notifications go through the Notifier: fire-and-forget, emitted
// only when the acting identity is not an admin.
type EmployeeService struct {
	repo     ports.EmployeeRepository
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, notifier ports.Notifier, logger zerolog.Logger) *EmployeeService {
	if notifier == nil {
		notifier = ports.NoopNotifier{}
	}
	return &EmployeeService{repo: repo, notifier: notifier, logger: logger}
}

// Create inserts a new record. Ownership and timestamps are stamped from
// the acting identity, overriding anything the caller supplied.
func (s *EmployeeService) Create(ctx context.Context, identity domain.Identity, input ports.CreateEmployeeInput) (string, error) {
	if input.Name == "" {
		return "", domain.ErrMissingFields
	}

	record := &domain.Employee{
		Name:       input.Name,
		Position:   input.Position,
		Department: input.Department,
		Salary:     input.Salary,
	}
	policy.StampOnCreate(identity, record, time.Now().UTC())

	id, err := s.repo.Insert(ctx, record)
	if err != nil {
		s.logger.Error().Err(err).Str("username", identity.Username).Msg("failed to create employee")
		return "", err
	}
	record.ID = id

	s.logger.Info().Str("id", id).Str("username", identity.Username).Msg("employee created")

	if !identity.IsAdmin() {
		s.notifier.Broadcast(domain.NotificationEvent{
			Type:      domain.NotificationRecordAdded,
			Message:   fmt.Sprintf("New employee %q added by %s", record.Name, identity.Username),
			Data:      record,
			Timestamp: time.Now().UTC(),
		})
	}

	return id, nil
}

// Get returns a single record. Existence is checked before ownership: an
// unknown id is not-found even for callers who could never have read it.
func (s *EmployeeService) Get(ctx context.Context, identity domain.Identity, id string) (*domain.Employee, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanRead(identity, record) {
		return nil, domain.ErrForbidden
	}
	return record, nil
}

// List returns records visible to identity, newest update first.
func (s *EmployeeService) List(ctx context.Context, identity domain.Identity) ([]*domain.Employee, error) {
	return s.repo.FindMany(ctx, policy.ScopeListQuery(identity))
}

// Update applies a partial update after the existence and ownership
// checks. No store mutation happens on a 404 or 403 path.
func (s *EmployeeService) Update(ctx context.Context, identity domain.Identity, id string, input ports.UpdateEmployeeInput) (int64, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}

	if !policy.CanMutate(identity, existing) {
		return 0, domain.ErrForbidden
	}

	update := domain.EmployeeUpdate{
		Name:       input.Name,
		Position:   input.Position,
		Department: input.Department,
		Salary:     input.Salary,
	}
	policy.StampOnUpdate(&update, time.Now().UTC())

	matched, modified, err := s.repo.UpdateByID(ctx, id, update)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to update employee")
		return 0, err
	}
	if matched == 0 {
		// Deleted between the lookup and the write.
		return 0, domain.ErrEmployeeNotFound
	}

	s.logger.Info().Str("id", id).Str("username", identity.Username).Msg("employee updated")

	if !identity.IsAdmin() {
		label := id
		if input.Name != nil {
			label = *input.Name
		}
		s.notifier.Broadcast(domain.NotificationEvent{
			Type:      domain.NotificationRecordUpdated,
			Message:   fmt.Sprintf("Employee %q was updated by %s", label, identity.Username),
			Data:      map[string]any{"id": id, "updates": input},
			Timestamp: time.Now().UTC(),
		})
	}

	return modified, nil
}

// Delete removes a record after the existence and ownership checks.
func (s *EmployeeService) Delete(ctx context.Context, identity domain.Identity, id string) (int64, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}

	if !policy.CanMutate(identity, existing) {
		return 0, domain.ErrForbidden
	}

	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to delete employee")
		return 0, err
	}
	if deleted == 0 {
		return 0, domain.ErrEmployeeNotFound
	}

	s.logger.Info().Str("id", id).Str("username", identity.Username).Msg("employee deleted")

	if !identity.IsAdmin() {
		s.notifier.Broadcast(domain.NotificationEvent{
			Type:      domain.NotificationRecordDeleted,
			Message:   fmt.Sprintf("An employee was deleted by %s", identity.Username),
			Data:      map[string]any{"id": id},
			Timestamp: time.Now().UTC(),
		})
	}

	return deleted, nil
}
