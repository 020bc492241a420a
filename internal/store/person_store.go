package store

import (
	"backoffice-service/internal/model"
)

const entityPerson = "person"

// CreatePerson inserts a flat person record.
func (s *Store) CreatePerson(p *model.Person) error {
	return translate(entityPerson, p.Email, s.db.Create(p).Error)
}

// SavePerson writes back an existing person record.
func (s *Store) SavePerson(p *model.Person) error {
	return translate(entityPerson, p.ID, s.db.Save(p).Error)
}

// GetPerson fetches a person record by key.
func (s *Store) GetPerson(id uint) (*model.Person, error) {
	var p model.Person
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, translate(entityPerson, id, err)
	}
	return &p, nil
}

// DeletePerson removes a person record.
func (s *Store) DeletePerson(id uint) error {
	return translate(entityPerson, id, s.db.Delete(&model.Person{}, id).Error)
}

// ListPersons returns all person records.
func (s *Store) ListPersons() ([]model.Person, error) {
	var persons []model.Person
	err := s.db.Order("id").Find(&persons).Error
	return persons, translate(entityPerson, "all", err)
}

// PersonsByType returns the person records carrying the given tag.
func (s *Store) PersonsByType(tag string) ([]model.Person, error) {
	var persons []model.Person
	err := s.db.Where("person_type = ?", tag).Order("id").Find(&persons).Error
	return persons, translate(entityPerson, tag, err)
}

// PersonByEmail fetches a person record by its unique email.
func (s *Store) PersonByEmail(email string) (*model.Person, error) {
	var p model.Person
	if err := s.db.Where("email = ?", email).First(&p).Error; err != nil {
		return nil, translate(entityPerson, email, err)
	}
	return &p, nil
}

// PersonEmailTaken reports whether another person already holds the email.
func (s *Store) PersonEmailTaken(email string, excludeID uint) (bool, error) {
	var count int64
	err := s.db.Model(&model.Person{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, translate(entityPerson, email, err)
}

// EmployeeIDTaken reports whether another person already holds the
// employee id.
func (s *Store) EmployeeIDTaken(employeeID string, excludeID uint) (bool, error) {
	var count int64
	err := s.db.Model(&model.Person{}).
		Where("employee_id = ? AND id <> ?", employeeID, excludeID).
		Count(&count).Error
	return count > 0, translate(entityPerson, employeeID, err)
}

// CustomerIDTaken reports whether another person already holds the
// customer id.
func (s *Store) CustomerIDTaken(customerID string, excludeID uint) (bool, error) {
	var count int64
	err := s.db.Model(&model.Person{}).
		Where("customer_id = ? AND id <> ?", customerID, excludeID).
		Count(&count).Error
	return count > 0, translate(entityPerson, customerID, err)
}
