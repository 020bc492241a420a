package person

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/model"
)

func TestEmployeeRoundTrip(t *testing.T) {
	hired := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	in := Employee{
		Core: Core{
			ID:    7,
			Name:  "Dana Smith",
			Email: "dana@corp.example",
			Phone: "555-0101",
		},
		EmployeeID: "EMP-007",
		Salary:     decimal.RequireFromString("85000.00"),
		Position:   model.PositionSeniorDeveloper,
		HireDate:   hired,
		Department: "Engineering",
	}

	rec := ToRecord(in)
	assert.Equal(t, model.PersonTypeEmployee, rec.PersonType)
	require.NotNil(t, rec.EmployeeID)
	assert.Equal(t, "EMP-007", *rec.EmployeeID)
	assert.Nil(t, rec.CustomerID, "customer columns stay NULL for employees")
	assert.Nil(t, rec.TotalSpent)

	out, err := FromRecord(rec)
	require.NoError(t, err)
	got, ok := out.(Employee)
	require.True(t, ok, "expected Employee, got %T", out)
	assert.Equal(t, in, got)
}

func TestCustomerRoundTrip(t *testing.T) {
	registered := time.Date(2023, 11, 20, 12, 0, 0, 0, time.UTC)
	in := Customer{
		Core: Core{
			ID:    12,
			Name:  "Lee Wong",
			Email: "lee@shop.example",
		},
		CustomerID:       "CUST-012",
		TotalSpent:       decimal.RequireFromString("1234.56"),
		CustomerType:     model.CustomerTypeVIP,
		RegistrationDate: registered,
		Address:          "1 Main St",
	}

	rec := ToRecord(in)
	assert.Equal(t, model.PersonTypeCustomer, rec.PersonType)
	require.NotNil(t, rec.CustomerID)
	assert.Equal(t, "CUST-012", *rec.CustomerID)
	assert.Nil(t, rec.EmployeeID, "employee columns stay NULL for customers")
	assert.Nil(t, rec.Salary)

	out, err := FromRecord(rec)
	require.NoError(t, err)
	got, ok := out.(Customer)
	require.True(t, ok, "expected Customer, got %T", out)
	assert.Equal(t, in, got)
}

func TestFromRecordUnknownTag(t *testing.T) {
	_, err := FromRecord(model.Person{PersonType: "ROBOT", Name: "R2"})
	assert.ErrorIs(t, err, apperr.ErrUnknownVariant)
	assert.Contains(t, err.Error(), "ROBOT")
}

func TestFromRecordNilColumnsBecomeZeroValues(t *testing.T) {
	// A hand-written row may leave variant columns NULL; the mapper must not
	// dereference them.
	out, err := FromRecord(model.Person{PersonType: model.PersonTypeEmployee, Name: "Bare"})
	require.NoError(t, err)
	e, ok := out.(Employee)
	require.True(t, ok)
	assert.Equal(t, "", e.EmployeeID)
	assert.True(t, e.Salary.IsZero())
	assert.True(t, e.HireDate.IsZero())
}

func TestPersonTypeTags(t *testing.T) {
	assert.Equal(t, "EMPLOYEE", Employee{}.PersonType())
	assert.Equal(t, "CUSTOMER", Customer{}.PersonType())
}
