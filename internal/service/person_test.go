package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/model"
	"backoffice-service/internal/person"
)

func employeeInput(name, email, employeeID string) person.Employee {
	return person.Employee{
		Core:       person.Core{Name: name, Email: email},
		EmployeeID: employeeID,
		Salary:     dec("85000.00"),
		Position:   model.PositionSeniorDeveloper,
		Department: "Engineering",
	}
}

func customerInput(name, email, customerID string) person.Customer {
	return person.Customer{
		Core:       person.Core{Name: name, Email: email},
		CustomerID: customerID,
		TotalSpent: dec("0.00"),
		Address:    "1 Main St",
	}
}

func TestCreateEmployee(t *testing.T) {
	ts := newTestServices(t)

	created, err := ts.persons.CreateEmployee(employeeInput("Dana", "dana@corp.example", "EMP-1"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, model.PositionSeniorDeveloper, created.Position)
	assert.False(t, created.HireDate.IsZero(), "hire date defaults to now")
}

func TestCreateEmployeeValidation(t *testing.T) {
	ts := newTestServices(t)

	_, err := ts.persons.CreateEmployee(person.Employee{Core: person.Core{Email: "x@y.z"}, EmployeeID: "EMP-1"})
	assert.ErrorIs(t, err, apperr.ErrMissingField)

	_, err = ts.persons.CreateEmployee(person.Employee{Core: person.Core{Name: "Dana", Email: "dana@corp.example"}})
	assert.ErrorIs(t, err, apperr.ErrMissingField)

	in := employeeInput("Dana", "dana@corp.example", "EMP-1")
	in.Position = "astronaut"
	_, err = ts.persons.CreateEmployee(in)
	assert.ErrorIs(t, err, apperr.ErrInvalidRange)
}

func TestCreateEmployeeDuplicates(t *testing.T) {
	ts := newTestServices(t)
	_, err := ts.persons.CreateEmployee(employeeInput("Dana", "dana@corp.example", "EMP-1"))
	require.NoError(t, err)

	_, err = ts.persons.CreateEmployee(employeeInput("Copy", "dana@corp.example", "EMP-2"))
	assert.ErrorIs(t, err, apperr.ErrDuplicateKey)

	_, err = ts.persons.CreateEmployee(employeeInput("Other", "other@corp.example", "EMP-1"))
	assert.ErrorIs(t, err, apperr.ErrDuplicateKey)
}

func TestCreateCustomerDefaults(t *testing.T) {
	ts := newTestServices(t)

	created, err := ts.persons.CreateCustomer(customerInput("Lee", "lee@shop.example", "CUST-1"))
	require.NoError(t, err)
	assert.Equal(t, model.CustomerTypeRegular, created.CustomerType)
	assert.False(t, created.RegistrationDate.IsZero(), "registration date defaults to now")
}

func TestCreateCustomerValidation(t *testing.T) {
	ts := newTestServices(t)

	_, err := ts.persons.CreateCustomer(person.Customer{Core: person.Core{Name: "Lee", Email: "lee@shop.example"}})
	assert.ErrorIs(t, err, apperr.ErrMissingField)

	in := customerInput("Lee", "lee@shop.example", "CUST-1")
	in.CustomerType = "platinum"
	_, err = ts.persons.CreateCustomer(in)
	assert.ErrorIs(t, err, apperr.ErrInvalidRange)
}

func TestEmailIsUniqueAcrossVariants(t *testing.T) {
	ts := newTestServices(t)
	_, err := ts.persons.CreateEmployee(employeeInput("Dana", "shared@example.com", "EMP-1"))
	require.NoError(t, err)

	_, err = ts.persons.CreateCustomer(customerInput("Lee", "shared@example.com", "CUST-1"))
	assert.ErrorIs(t, err, apperr.ErrDuplicateKey)
}

func TestGetReturnsTypedVariant(t *testing.T) {
	ts := newTestServices(t)
	created, err := ts.persons.CreateEmployee(employeeInput("Dana", "dana@corp.example", "EMP-1"))
	require.NoError(t, err)

	v, err := ts.persons.Get(created.ID)
	require.NoError(t, err)
	e, ok := v.(person.Employee)
	require.True(t, ok, "expected Employee, got %T", v)
	assert.Equal(t, "EMP-1", e.EmployeeID)
	assert.True(t, e.Salary.Equal(dec("85000.00")))
}

func TestListSplitsByVariant(t *testing.T) {
	ts := newTestServices(t)
	_, err := ts.persons.CreateEmployee(employeeInput("Dana", "dana@corp.example", "EMP-1"))
	require.NoError(t, err)
	_, err = ts.persons.CreateCustomer(customerInput("Lee", "lee@shop.example", "CUST-1"))
	require.NoError(t, err)

	all, err := ts.persons.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	employees, err := ts.persons.ListEmployees()
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "Dana", employees[0].Name)

	customers, err := ts.persons.ListCustomers()
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Lee", customers[0].Name)
}

func TestDeletePerson(t *testing.T) {
	ts := newTestServices(t)
	created, err := ts.persons.CreateEmployee(employeeInput("Dana", "dana@corp.example", "EMP-1"))
	require.NoError(t, err)

	require.NoError(t, ts.persons.Delete(created.ID))
	_, err = ts.persons.Get(created.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = ts.persons.Delete(created.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
