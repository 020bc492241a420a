package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"backoffice-service/internal/model"
	"backoffice-service/internal/store"
)

type testServices struct {
	store       *store.Store
	users       *UserService
	departments *DepartmentService
	membership  *MembershipService
	orders      *OrderService
	persons     *PersonService
	demo        *DemoService
}

// newTestServices wires the full service stack over a fresh in-memory
// database.
func newTestServices(t *testing.T) *testServices {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Department{},
		&model.UserDepartment{},
		&model.Order{},
		&model.OrderItem{},
		&model.Person{},
	))

	log := zap.NewNop()
	st := store.New(db)
	ts := &testServices{
		store:       st,
		users:       NewUserService(st, log),
		departments: NewDepartmentService(st, log),
		membership:  NewMembershipService(st, log),
		orders:      NewOrderService(st, log),
		persons:     NewPersonService(st, log),
	}
	ts.demo = NewDemoService(st, ts.users, ts.departments, ts.membership, ts.orders, ts.persons, log)
	return ts
}

func intPtr(v int) *int { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
