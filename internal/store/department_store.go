package store

import (
	"backoffice-service/internal/model"
)

const entityDepartment = "department"

// CreateDepartment inserts a new department.
func (s *Store) CreateDepartment(d *model.Department) error {
	return translate(entityDepartment, d.Name, s.db.Create(d).Error)
}

// SaveDepartment writes back an existing department.
func (s *Store) SaveDepartment(d *model.Department) error {
	return translate(entityDepartment, d.ID, s.db.Save(d).Error)
}

// GetDepartment fetches a department by key.
func (s *Store) GetDepartment(id uint) (*model.Department, error) {
	var d model.Department
	if err := s.db.First(&d, id).Error; err != nil {
		return nil, translate(entityDepartment, id, err)
	}
	return &d, nil
}

// DeleteDepartment removes a department row. Memberships pointing at it are
// cleared by the department service inside the same transaction.
func (s *Store) DeleteDepartment(id uint) error {
	return translate(entityDepartment, id, s.db.Delete(&model.Department{}, id).Error)
}

// ListDepartments returns all departments.
func (s *Store) ListDepartments() ([]model.Department, error) {
	var deps []model.Department
	err := s.db.Find(&deps).Error
	return deps, translate(entityDepartment, "all", err)
}

// DepartmentByName fetches a department by its unique name.
func (s *Store) DepartmentByName(name string) (*model.Department, error) {
	var d model.Department
	if err := s.db.Where("name = ?", name).First(&d).Error; err != nil {
		return nil, translate(entityDepartment, name, err)
	}
	return &d, nil
}

// DepartmentNameTaken reports whether another department already holds the
// name. excludeID skips the record being updated.
func (s *Store) DepartmentNameTaken(name string, excludeID uint) (bool, error) {
	var count int64
	err := s.db.Model(&model.Department{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, translate(entityDepartment, name, err)
}

// DepartmentsByNameKeyword returns departments whose name contains the
// keyword, case-insensitively.
func (s *Store) DepartmentsByNameKeyword(keyword string) ([]model.Department, error) {
	var deps []model.Department
	err := s.db.Where("LOWER(name) LIKE LOWER(?)", "%"+keyword+"%").Find(&deps).Error
	return deps, translate(entityDepartment, keyword, err)
}

// DepartmentsByDescriptionKeyword returns departments whose description
// contains the keyword, case-insensitively.
func (s *Store) DepartmentsByDescriptionKeyword(keyword string) ([]model.Department, error) {
	var deps []model.Department
	err := s.db.Where("LOWER(description) LIKE LOWER(?)", "%"+keyword+"%").Find(&deps).Error
	return deps, translate(entityDepartment, keyword, err)
}

// DepartmentsWithUserCount returns every department together with the
// number of users attached to it through the membership table.
func (s *Store) DepartmentsWithUserCount() ([]model.DepartmentWithUserCount, error) {
	var rows []model.DepartmentWithUserCount
	err := s.db.Model(&model.Department{}).
		Select("departments.*, COUNT(user_departments.id) AS user_count").
		Joins("LEFT JOIN user_departments ON user_departments.department_id = departments.id").
		Group("departments.id").
		Order("departments.id").
		Scan(&rows).Error
	return rows, translate(entityDepartment, "user counts", err)
}
