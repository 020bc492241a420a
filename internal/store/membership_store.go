package store

import (
	"backoffice-service/internal/model"
)

const entityMembership = "membership"

// MembershipExists reports whether the (user, department) pair is attached.
func (s *Store) MembershipExists(userID, departmentID uint) (bool, error) {
	var count int64
	err := s.db.Model(&model.UserDepartment{}).
		Where("user_id = ? AND department_id = ?", userID, departmentID).
		Count(&count).Error
	return count > 0, translate(entityMembership, userID, err)
}

// CreateMembership inserts a membership row for the pair.
func (s *Store) CreateMembership(userID, departmentID uint) error {
	row := model.UserDepartment{UserID: userID, DepartmentID: departmentID}
	return translate(entityMembership, userID, s.db.Create(&row).Error)
}

// DeleteMembership removes the membership row for the pair, if present.
// It reports how many rows were removed.
func (s *Store) DeleteMembership(userID, departmentID uint) (int64, error) {
	res := s.db.Where("user_id = ? AND department_id = ?", userID, departmentID).
		Delete(&model.UserDepartment{})
	return res.RowsAffected, translate(entityMembership, userID, res.Error)
}

// DeleteMembershipsByUser clears every membership of the user.
func (s *Store) DeleteMembershipsByUser(userID uint) error {
	err := s.db.Where("user_id = ?", userID).Delete(&model.UserDepartment{}).Error
	return translate(entityMembership, userID, err)
}

// DeleteMembershipsByDepartment clears every membership of the department.
func (s *Store) DeleteMembershipsByDepartment(departmentID uint) error {
	err := s.db.Where("department_id = ?", departmentID).Delete(&model.UserDepartment{}).Error
	return translate(entityMembership, departmentID, err)
}

// DepartmentsOfUser derives the "user.departments" side of the relation
// from the membership rows.
func (s *Store) DepartmentsOfUser(userID uint) ([]model.Department, error) {
	var deps []model.Department
	err := s.db.Model(&model.Department{}).
		Joins("JOIN user_departments ON user_departments.department_id = departments.id").
		Where("user_departments.user_id = ?", userID).
		Order("departments.id").
		Find(&deps).Error
	return deps, translate(entityMembership, userID, err)
}

// UsersOfDepartment derives the "department.users" side of the relation
// from the membership rows.
func (s *Store) UsersOfDepartment(departmentID uint) ([]model.User, error) {
	var users []model.User
	err := s.db.Model(&model.User{}).
		Joins("JOIN user_departments ON user_departments.user_id = users.id").
		Where("user_departments.department_id = ?", departmentID).
		Order("users.id").
		Find(&users).Error
	return users, translate(entityMembership, departmentID, err)
}

// CountUsersOfDepartment returns how many users are attached to the
// department.
func (s *Store) CountUsersOfDepartment(departmentID uint) (int64, error) {
	var count int64
	err := s.db.Model(&model.UserDepartment{}).
		Where("department_id = ?", departmentID).
		Count(&count).Error
	return count, translate(entityMembership, departmentID, err)
}
