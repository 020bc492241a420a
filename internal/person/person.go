// Package person holds the typed views over the flat persons table. The
// table stores one record shape with a person_type tag; this package maps
// each record to exactly one of the closed variant set {Employee, Customer}
// and back. Adding a variant means adding a tag, a struct and a dispatch
// arm here, and nothing else.
package person

import (
	"time"

	"github.com/shopspring/decimal"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/model"
)

// Core carries the fields shared by every person variant.
type Core struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Variant is the closed union of person kinds.
type Variant interface {
	// PersonType returns the discriminator tag stored for this variant.
	PersonType() string
}

// Employee is the EMPLOYEE variant.
type Employee struct {
	Core
	EmployeeID string                 `json:"employee_id"`
	Salary     decimal.Decimal        `json:"salary"`
	Position   model.EmployeePosition `json:"position"`
	HireDate   time.Time              `json:"hire_date"`
	Department string                 `json:"department,omitempty"`
}

// PersonType implements Variant.
func (Employee) PersonType() string { return model.PersonTypeEmployee }

// Customer is the CUSTOMER variant.
type Customer struct {
	Core
	CustomerID       string             `json:"customer_id"`
	TotalSpent       decimal.Decimal    `json:"total_spent"`
	CustomerType     model.CustomerType `json:"customer_type"`
	RegistrationDate time.Time          `json:"registration_date"`
	Address          string             `json:"address,omitempty"`
}

// PersonType implements Variant.
func (Customer) PersonType() string { return model.PersonTypeCustomer }

// ToRecord flattens a variant into the stored record shape. Columns that do
// not apply to the variant are left NULL.
func ToRecord(v Variant) model.Person {
	switch p := v.(type) {
	case Employee:
		position := string(p.Position)
		return model.Person{
			ID:         p.ID,
			PersonType: model.PersonTypeEmployee,
			Name:       p.Name,
			Email:      p.Email,
			Phone:      p.Phone,
			CreatedAt:  p.CreatedAt,
			UpdatedAt:  p.UpdatedAt,
			EmployeeID: &p.EmployeeID,
			Salary:     &p.Salary,
			Position:   &position,
			HireDate:   &p.HireDate,
			Department: &p.Department,
		}
	case Customer:
		customerType := string(p.CustomerType)
		return model.Person{
			ID:               p.ID,
			PersonType:       model.PersonTypeCustomer,
			Name:             p.Name,
			Email:            p.Email,
			Phone:            p.Phone,
			CreatedAt:        p.CreatedAt,
			UpdatedAt:        p.UpdatedAt,
			CustomerID:       &p.CustomerID,
			TotalSpent:       &p.TotalSpent,
			CustomerType:     &customerType,
			RegistrationDate: &p.RegistrationDate,
			Address:          &p.Address,
		}
	default:
		// The variant set is closed; a new Variant implementation without a
		// mapper arm is a programming error caught by the tests.
		panic("person: unmapped variant")
	}
}

// FromRecord dispatches on the stored tag and rebuilds the typed variant.
// An unrecognized tag fails with UnknownVariant.
func FromRecord(rec model.Person) (Variant, error) {
	core := Core{
		ID:        rec.ID,
		Name:      rec.Name,
		Email:     rec.Email,
		Phone:     rec.Phone,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	switch rec.PersonType {
	case model.PersonTypeEmployee:
		e := Employee{Core: core}
		if rec.EmployeeID != nil {
			e.EmployeeID = *rec.EmployeeID
		}
		if rec.Salary != nil {
			e.Salary = *rec.Salary
		}
		if rec.Position != nil {
			e.Position = model.EmployeePosition(*rec.Position)
		}
		if rec.HireDate != nil {
			e.HireDate = *rec.HireDate
		}
		if rec.Department != nil {
			e.Department = *rec.Department
		}
		return e, nil
	case model.PersonTypeCustomer:
		c := Customer{Core: core}
		if rec.CustomerID != nil {
			c.CustomerID = *rec.CustomerID
		}
		if rec.TotalSpent != nil {
			c.TotalSpent = *rec.TotalSpent
		}
		if rec.CustomerType != nil {
			c.CustomerType = model.CustomerType(*rec.CustomerType)
		}
		if rec.RegistrationDate != nil {
			c.RegistrationDate = *rec.RegistrationDate
		}
		if rec.Address != nil {
			c.Address = *rec.Address
		}
		return c, nil
	default:
		return nil, apperr.UnknownVariant(rec.PersonType)
	}
}
