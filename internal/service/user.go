package service

import (
	"time"

	"go.uber.org/zap"

	"backoffice-service/internal/model"
	"backoffice-service/internal/store"
)

// UserService carries the user lifecycle: validate, then ask the store for
// an atomic apply. A failed validation never reaches the store.
type UserService struct {
	store *store.Store
	log   *zap.Logger
}

// NewUserService creates the user service.
func NewUserService(s *store.Store, log *zap.Logger) *UserService {
	return &UserService{store: s, log: log}
}

// UserInput is the caller-supplied shape of a user.
type UserInput struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Age      *int   `json:"age,omitempty"`
}

// Create validates and inserts a new user.
func (s *UserService) Create(in UserInput) (*model.User, error) {
	user := &model.User{Username: in.Username, Email: in.Email, Age: in.Age}
	if err := ValidateNewUser(s.store, user); err != nil {
		return nil, err
	}
	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}
	s.log.Info("user created", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// CreateBatch validates and inserts several users in one transaction; if
// any candidate is invalid, none of them is persisted.
func (s *UserService) CreateBatch(inputs []UserInput) ([]*model.User, error) {
	users := make([]*model.User, 0, len(inputs))
	for _, in := range inputs {
		users = append(users, &model.User{Username: in.Username, Email: in.Email, Age: in.Age})
	}
	err := s.store.WithTx(func(tx *store.Store) error {
		for _, u := range users {
			if err := ValidateNewUser(tx, u); err != nil {
				return err
			}
			if err := tx.CreateUser(u); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("users created in batch", zap.Int("count", len(users)))
	return users, nil
}

// Update validates and writes back a user's fields.
func (s *UserService) Update(id uint, in UserInput) (*model.User, error) {
	user, err := s.store.GetUser(id)
	if err != nil {
		return nil, err
	}
	user.Username = in.Username
	user.Email = in.Email
	user.Age = in.Age
	if err := ValidateUserUpdate(s.store, user); err != nil {
		return nil, err
	}
	if err := s.store.SaveUser(user); err != nil {
		return nil, err
	}
	s.log.Info("user updated", zap.Uint("user_id", user.ID))
	return user, nil
}

// UpdateAge changes only the user's age, with the same range check.
func (s *UserService) UpdateAge(id uint, age int) (*model.User, error) {
	user, err := s.store.GetUser(id)
	if err != nil {
		return nil, err
	}
	user.Age = &age
	if err := ValidateUserUpdate(s.store, user); err != nil {
		return nil, err
	}
	if err := s.store.SaveUser(user); err != nil {
		return nil, err
	}
	s.log.Info("user age updated", zap.Uint("user_id", user.ID), zap.Int("age", age))
	return user, nil
}

// Delete removes the user, its memberships and its owned orders in one
// transaction. Departments themselves are untouched.
func (s *UserService) Delete(id uint) error {
	if _, err := s.store.GetUser(id); err != nil {
		return err
	}
	err := s.store.WithTx(func(tx *store.Store) error {
		if err := tx.DeleteMembershipsByUser(id); err != nil {
			return err
		}
		orders, err := tx.OrdersByUser(id)
		if err != nil {
			return err
		}
		for _, order := range orders {
			if err := tx.DeleteItemsByOrder(order.ID); err != nil {
				return err
			}
			if err := tx.DeleteOrder(order.ID); err != nil {
				return err
			}
		}
		return tx.DeleteUser(id)
	})
	if err == nil {
		s.log.Info("user deleted", zap.Uint("user_id", id))
	}
	return err
}

// Get fetches a user by key.
func (s *UserService) Get(id uint) (*model.User, error) {
	return s.store.GetUser(id)
}

// List returns all users.
func (s *UserService) List() ([]model.User, error) {
	return s.store.ListUsers()
}

// ListPage returns one page of users plus the total count.
func (s *UserService) ListPage(p store.Page) ([]model.User, int64, error) {
	return s.store.ListUsersPage(p)
}

// ByUsername fetches a user by username.
func (s *UserService) ByUsername(username string) (*model.User, error) {
	return s.store.UserByUsername(username)
}

// ByEmail fetches a user by email.
func (s *UserService) ByEmail(email string) (*model.User, error) {
	return s.store.UserByEmail(email)
}

// ByAge returns users with exactly the given age.
func (s *UserService) ByAge(age int) ([]model.User, error) {
	return s.store.UsersByAge(age)
}

// ByAgeBetween returns users with age in [min, max].
func (s *UserService) ByAgeBetween(min, max int) ([]model.User, error) {
	return s.store.UsersByAgeBetween(min, max)
}

// ByAgeGreaterThan returns users strictly older than age.
func (s *UserService) ByAgeGreaterThan(age int) ([]model.User, error) {
	return s.store.UsersByAgeGreaterThan(age)
}

// SearchByUsername returns users whose username contains the keyword.
func (s *UserService) SearchByUsername(keyword string) ([]model.User, error) {
	return s.store.UsersByUsernameKeyword(keyword)
}

// ByEmailSuffix returns users whose email ends with the suffix.
func (s *UserService) ByEmailSuffix(suffix string) ([]model.User, error) {
	return s.store.UsersByEmailSuffix(suffix)
}

// CreatedAfter returns users created after the given time.
func (s *UserService) CreatedAfter(t time.Time) ([]model.User, error) {
	return s.store.UsersCreatedAfter(t)
}

// CountByAge returns the number of users with exactly the given age.
func (s *UserService) CountByAge(age int) (int64, error) {
	return s.store.CountUsersByAge(age)
}

// Statistics aggregates count/avg/max/min over users.
func (s *UserService) Statistics() (*store.UserStatistics, error) {
	return s.store.GetUserStatistics()
}

// Usernames returns the username projection of every user.
func (s *UserService) Usernames() ([]string, error) {
	return s.store.Usernames()
}

// Emails returns the email projection of every user.
func (s *UserService) Emails() ([]string, error) {
	return s.store.Emails()
}
