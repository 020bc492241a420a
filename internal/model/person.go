package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Person type tags stored in the person_type discriminator column.
const (
	PersonTypeEmployee = "EMPLOYEE"
	PersonTypeCustomer = "CUSTOMER"
)

// EmployeePosition is the job position of an employee.
type EmployeePosition string

const (
	PositionJuniorDeveloper EmployeePosition = "junior_developer"
	PositionSeniorDeveloper EmployeePosition = "senior_developer"
	PositionTeamLead        EmployeePosition = "team_lead"
	PositionManager         EmployeePosition = "manager"
	PositionDirector        EmployeePosition = "director"
)

// Valid reports whether the position is one of the known positions.
func (p EmployeePosition) Valid() bool {
	switch p {
	case PositionJuniorDeveloper, PositionSeniorDeveloper, PositionTeamLead,
		PositionManager, PositionDirector:
		return true
	}
	return false
}

// CustomerType classifies a customer.
type CustomerType string

const (
	CustomerTypeRegular CustomerType = "regular"
	CustomerTypeVIP     CustomerType = "vip"
	CustomerTypePremium CustomerType = "premium"
)

// Valid reports whether the customer type is one of the known types.
func (t CustomerType) Valid() bool {
	switch t {
	case CustomerTypeRegular, CustomerTypeVIP, CustomerTypePremium:
		return true
	}
	return false
}

// Person is the flat single-table record behind the employee/customer
// hierarchy. PersonType discriminates which variant the row represents;
// columns not applicable to the variant stay NULL. The typed views live in
// the person package, which owns the two-way mapping.
type Person struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PersonType string    `json:"person_type" gorm:"type:varchar(20);index;not null"`
	Name       string    `json:"name" gorm:"type:varchar(100);not null"`
	Email      string    `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Phone      string    `json:"phone" gorm:"type:varchar(30)"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Employee columns
	EmployeeID *string          `json:"employee_id,omitempty" gorm:"type:varchar(50);uniqueIndex"`
	Salary     *decimal.Decimal `json:"salary,omitempty" gorm:"type:decimal(10,2)"`
	Position   *string          `json:"position,omitempty" gorm:"type:varchar(30)"`
	HireDate   *time.Time       `json:"hire_date,omitempty"`
	Department *string          `json:"department,omitempty" gorm:"type:varchar(100)"`

	// Customer columns
	CustomerID       *string          `json:"customer_id,omitempty" gorm:"type:varchar(50);uniqueIndex"`
	TotalSpent       *decimal.Decimal `json:"total_spent,omitempty" gorm:"type:decimal(10,2)"`
	CustomerType     *string          `json:"customer_type,omitempty" gorm:"type:varchar(20)"`
	RegistrationDate *time.Time       `json:"registration_date,omitempty"`
	Address          *string          `json:"address,omitempty" gorm:"type:varchar(255)"`
}

// TableName keeps the original table naming.
func (Person) TableName() string {
	return "persons"
}
