package service

import (
	"go.uber.org/zap"

	"backoffice-service/internal/model"
	"backoffice-service/internal/store"
)

// DepartmentService carries the department lifecycle.
type DepartmentService struct {
	store *store.Store
	log   *zap.Logger
}

// NewDepartmentService creates the department service.
func NewDepartmentService(s *store.Store, log *zap.Logger) *DepartmentService {
	return &DepartmentService{store: s, log: log}
}

// DepartmentInput is the caller-supplied shape of a department.
type DepartmentInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// Create validates and inserts a new department.
func (s *DepartmentService) Create(in DepartmentInput) (*model.Department, error) {
	dep := &model.Department{Name: in.Name, Description: in.Description}
	if err := ValidateDepartment(s.store, dep); err != nil {
		return nil, err
	}
	if err := s.store.CreateDepartment(dep); err != nil {
		return nil, err
	}
	s.log.Info("department created", zap.Uint("department_id", dep.ID), zap.String("name", dep.Name))
	return dep, nil
}

// Update validates and writes back a department's fields.
func (s *DepartmentService) Update(id uint, in DepartmentInput) (*model.Department, error) {
	dep, err := s.store.GetDepartment(id)
	if err != nil {
		return nil, err
	}
	dep.Name = in.Name
	dep.Description = in.Description
	if err := ValidateDepartment(s.store, dep); err != nil {
		return nil, err
	}
	if err := s.store.SaveDepartment(dep); err != nil {
		return nil, err
	}
	s.log.Info("department updated", zap.Uint("department_id", dep.ID))
	return dep, nil
}

// Delete removes the department and every membership pointing at it in one
// transaction. Users themselves are untouched.
func (s *DepartmentService) Delete(id uint) error {
	if _, err := s.store.GetDepartment(id); err != nil {
		return err
	}
	err := s.store.WithTx(func(tx *store.Store) error {
		if err := tx.DeleteMembershipsByDepartment(id); err != nil {
			return err
		}
		return tx.DeleteDepartment(id)
	})
	if err == nil {
		s.log.Info("department deleted", zap.Uint("department_id", id))
	}
	return err
}

// Get fetches a department by key.
func (s *DepartmentService) Get(id uint) (*model.Department, error) {
	return s.store.GetDepartment(id)
}

// List returns all departments.
func (s *DepartmentService) List() ([]model.Department, error) {
	return s.store.ListDepartments()
}

// ByName fetches a department by its unique name.
func (s *DepartmentService) ByName(name string) (*model.Department, error) {
	return s.store.DepartmentByName(name)
}

// SearchByName returns departments whose name contains the keyword.
func (s *DepartmentService) SearchByName(keyword string) ([]model.Department, error) {
	return s.store.DepartmentsByNameKeyword(keyword)
}

// SearchByDescription returns departments whose description contains the
// keyword.
func (s *DepartmentService) SearchByDescription(keyword string) ([]model.Department, error) {
	return s.store.DepartmentsByDescriptionKeyword(keyword)
}

// WithUserCounts returns every department with its attached-user count.
func (s *DepartmentService) WithUserCounts() ([]model.DepartmentWithUserCount, error) {
	return s.store.DepartmentsWithUserCount()
}
