package store

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"backoffice-service/internal/model"
)

// newTestStore opens an isolated in-memory database with the full schema.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection so every statement sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Department{},
		&model.UserDepartment{},
		&model.Order{},
		&model.OrderItem{},
		&model.Person{},
	))
	return New(db)
}

func mustCreateUser(t *testing.T, s *Store, username, email string, age int) *model.User {
	t.Helper()
	u := &model.User{Username: username, Email: email, Age: &age}
	require.NoError(t, s.CreateUser(u))
	return u
}

func mustCreateDepartment(t *testing.T, s *Store, name string) *model.Department {
	t.Helper()
	d := &model.Department{Name: name}
	require.NoError(t, s.CreateDepartment(d))
	return d
}
