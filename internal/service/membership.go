package service

import (
	"errors"

	"go.uber.org/zap"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/model"
	"backoffice-service/internal/store"
)

// MembershipService is the only path allowed to mutate the user-department
// relation. Membership lives in explicit UserDepartment rows, so the two
// sides of the relation are derived views that cannot diverge.
type MembershipService struct {
	store *store.Store
	log   *zap.Logger
}

// NewMembershipService creates the membership service.
func NewMembershipService(s *store.Store, log *zap.Logger) *MembershipService {
	return &MembershipService{store: s, log: log}
}

// Attach links the user and the department. Attaching an already-attached
// pair is a no-op, not an error.
func (m *MembershipService) Attach(userID, departmentID uint) error {
	if _, err := m.store.GetUser(userID); err != nil {
		return err
	}
	if _, err := m.store.GetDepartment(departmentID); err != nil {
		return err
	}
	return m.store.WithTx(func(tx *store.Store) error {
		attached, err := tx.MembershipExists(userID, departmentID)
		if err != nil {
			return err
		}
		if attached {
			return nil
		}
		if err := tx.CreateMembership(userID, departmentID); err != nil {
			// A concurrent attach of the same pair trips the unique pair
			// index; the relation already holds, so this stays a no-op.
			if errors.Is(err, apperr.ErrDuplicateKey) {
				return nil
			}
			return err
		}
		m.log.Info("attached user to department",
			zap.Uint("user_id", userID),
			zap.Uint("department_id", departmentID))
		return nil
	})
}

// Detach unlinks the user and the department. Detaching a pair that is not
// attached is a no-op.
func (m *MembershipService) Detach(userID, departmentID uint) error {
	if _, err := m.store.GetUser(userID); err != nil {
		return err
	}
	if _, err := m.store.GetDepartment(departmentID); err != nil {
		return err
	}
	removed, err := m.store.DeleteMembership(userID, departmentID)
	if err != nil {
		return err
	}
	if removed > 0 {
		m.log.Info("detached user from department",
			zap.Uint("user_id", userID),
			zap.Uint("department_id", departmentID))
	}
	return nil
}

// DepartmentsOf returns the departments the user is attached to.
func (m *MembershipService) DepartmentsOf(userID uint) ([]model.Department, error) {
	if _, err := m.store.GetUser(userID); err != nil {
		return nil, err
	}
	return m.store.DepartmentsOfUser(userID)
}

// UsersOf returns the users attached to the department.
func (m *MembershipService) UsersOf(departmentID uint) ([]model.User, error) {
	if _, err := m.store.GetDepartment(departmentID); err != nil {
		return nil, err
	}
	return m.store.UsersOfDepartment(departmentID)
}
