package service

import (
	"strconv"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/model"
	"backoffice-service/internal/store"
)

// Validation rules are pure: they read from the store and return a verdict.
// Callers decide whether to abort the write.

// ValidateNewUser checks a candidate user before its first insert.
func ValidateNewUser(s *store.Store, u *model.User) error {
	return validateUser(s, u, 0)
}

// ValidateUserUpdate checks an updated user. The user's own row is excluded
// from the uniqueness checks.
func ValidateUserUpdate(s *store.Store, u *model.User) error {
	return validateUser(s, u, u.ID)
}

func validateUser(s *store.Store, u *model.User, excludeID uint) error {
	if u.Username == "" {
		return apperr.Missing("user", "username")
	}
	if u.Email == "" {
		return apperr.Missing("user", "email")
	}
	if u.Age != nil && (*u.Age < model.MinAge || *u.Age > model.MaxAge) {
		return apperr.OutOfRange("user", "age", *u.Age, model.MinAge, model.MaxAge)
	}
	taken, err := s.UsernameTaken(u.Username, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Duplicate("user", "username", u.Username)
	}
	taken, err = s.EmailTaken(u.Email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Duplicate("user", "email", u.Email)
	}
	return nil
}

// ValidateDepartment checks a candidate department.
func ValidateDepartment(s *store.Store, d *model.Department) error {
	if d.Name == "" {
		return apperr.Missing("department", "name")
	}
	taken, err := s.DepartmentNameTaken(d.Name, d.ID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Duplicate("department", "name", d.Name)
	}
	return nil
}

// validateOrderItem checks an item's field constraints.
func validateOrderItem(item *model.OrderItem) error {
	if item.ProductName == "" {
		return apperr.Missing("order item", "product_name")
	}
	if item.Quantity <= 0 {
		return apperr.InvalidValue("order item", "quantity", strconv.Itoa(item.Quantity))
	}
	if item.Price.IsNegative() {
		return apperr.InvalidValue("order item", "price", item.Price.String())
	}
	return nil
}
