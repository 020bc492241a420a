package store

import (
	"time"

	"backoffice-service/internal/model"
)

const entityUser = "user"

// CreateUser inserts a new user. The store assigns the key and timestamps.
func (s *Store) CreateUser(u *model.User) error {
	return translate(entityUser, u.Username, s.db.Create(u).Error)
}

// CreateUsers inserts a batch of users in one statement. Callers wanting
// all-or-nothing semantics run this inside WithTx.
func (s *Store) CreateUsers(users []*model.User) error {
	if len(users) == 0 {
		return nil
	}
	return translate(entityUser, "batch", s.db.Create(&users).Error)
}

// SaveUser writes back an existing user.
func (s *Store) SaveUser(u *model.User) error {
	return translate(entityUser, u.ID, s.db.Save(u).Error)
}

// GetUser fetches a user by key.
func (s *Store) GetUser(id uint) (*model.User, error) {
	var u model.User
	if err := s.db.First(&u, id).Error; err != nil {
		return nil, translate(entityUser, id, err)
	}
	return &u, nil
}

// DeleteUser removes a user row. Owned orders and memberships are cleaned
// up by the user service inside the same transaction.
func (s *Store) DeleteUser(id uint) error {
	return translate(entityUser, id, s.db.Delete(&model.User{}, id).Error)
}

// ListUsers returns all users.
func (s *Store) ListUsers() ([]model.User, error) {
	var users []model.User
	err := s.db.Find(&users).Error
	return users, translate(entityUser, "all", err)
}

// ListUsersPage returns one page of users plus the total row count.
func (s *Store) ListUsersPage(p Page) ([]model.User, int64, error) {
	var total int64
	if err := s.db.Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, translate(entityUser, "count", err)
	}
	var users []model.User
	err := p.apply(s.db).Find(&users).Error
	return users, total, translate(entityUser, "page", err)
}

// UserByUsername fetches a user by its unique username.
func (s *Store) UserByUsername(username string) (*model.User, error) {
	var u model.User
	if err := s.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(entityUser, username, err)
	}
	return &u, nil
}

// UserByEmail fetches a user by its unique email.
func (s *Store) UserByEmail(email string) (*model.User, error) {
	var u model.User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(entityUser, email, err)
	}
	return &u, nil
}

// UsernameTaken reports whether another user already holds the username.
// excludeID skips the record being updated.
func (s *Store) UsernameTaken(username string, excludeID uint) (bool, error) {
	var count int64
	err := s.db.Model(&model.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error
	return count > 0, translate(entityUser, username, err)
}

// EmailTaken reports whether another user already holds the email.
func (s *Store) EmailTaken(email string, excludeID uint) (bool, error) {
	var count int64
	err := s.db.Model(&model.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, translate(entityUser, email, err)
}

// UsersByAge returns users with exactly the given age.
func (s *Store) UsersByAge(age int) ([]model.User, error) {
	var users []model.User
	err := s.db.Where("age = ?", age).Find(&users).Error
	return users, translate(entityUser, age, err)
}

// UsersByAgeBetween returns users with age in [min, max].
func (s *Store) UsersByAgeBetween(min, max int) ([]model.User, error) {
	var users []model.User
	err := s.db.Where("age BETWEEN ? AND ?", min, max).Find(&users).Error
	return users, translate(entityUser, "age range", err)
}

// UsersByAgeGreaterThan returns users strictly older than age.
func (s *Store) UsersByAgeGreaterThan(age int) ([]model.User, error) {
	var users []model.User
	err := s.db.Where("age > ?", age).Find(&users).Error
	return users, translate(entityUser, age, err)
}

// UsersByUsernameKeyword returns users whose username contains the keyword,
// case-insensitively.
func (s *Store) UsersByUsernameKeyword(keyword string) ([]model.User, error) {
	var users []model.User
	err := s.db.Where("LOWER(username) LIKE LOWER(?)", "%"+keyword+"%").Find(&users).Error
	return users, translate(entityUser, keyword, err)
}

// UsersByEmailSuffix returns users whose email ends with the suffix.
func (s *Store) UsersByEmailSuffix(suffix string) ([]model.User, error) {
	var users []model.User
	err := s.db.Where("email LIKE ?", "%"+suffix).Find(&users).Error
	return users, translate(entityUser, suffix, err)
}

// UsersCreatedAfter returns users created after the given time.
func (s *Store) UsersCreatedAfter(t time.Time) ([]model.User, error) {
	var users []model.User
	err := s.db.Where("created_at > ?", t).Find(&users).Error
	return users, translate(entityUser, t, err)
}

// CountUsers returns the total number of users.
func (s *Store) CountUsers() (int64, error) {
	var count int64
	err := s.db.Model(&model.User{}).Count(&count).Error
	return count, translate(entityUser, "count", err)
}

// CountUsersByAge returns the number of users with exactly the given age.
func (s *Store) CountUsersByAge(age int) (int64, error) {
	var count int64
	err := s.db.Model(&model.User{}).Where("age = ?", age).Count(&count).Error
	return count, translate(entityUser, age, err)
}

// UserStatistics aggregates over all users. Users without an age count
// toward the total but not toward the age aggregates.
type UserStatistics struct {
	Count      int64    `json:"count"`
	AverageAge *float64 `json:"average_age"`
	MaxAge     *int     `json:"max_age"`
	MinAge     *int     `json:"min_age"`
}

// GetUserStatistics computes count/avg/max/min over users in one query.
func (s *Store) GetUserStatistics() (*UserStatistics, error) {
	var stats UserStatistics
	err := s.db.Model(&model.User{}).
		Select("COUNT(*) AS count, AVG(age) AS average_age, MAX(age) AS max_age, MIN(age) AS min_age").
		Scan(&stats).Error
	if err != nil {
		return nil, translate(entityUser, "statistics", err)
	}
	return &stats, nil
}

// Usernames returns the username column of every user.
func (s *Store) Usernames() ([]string, error) {
	var names []string
	err := s.db.Model(&model.User{}).Order("id").Pluck("username", &names).Error
	return names, translate(entityUser, "usernames", err)
}

// Emails returns the email column of every user.
func (s *Store) Emails() ([]string, error) {
	var emails []string
	err := s.db.Model(&model.User{}).Order("id").Pluck("email", &emails).Error
	return emails, translate(entityUser, "emails", err)
}
