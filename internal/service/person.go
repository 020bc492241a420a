package service

import (
	"time"

	"go.uber.org/zap"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/model"
	"backoffice-service/internal/person"
	"backoffice-service/internal/store"
)

// PersonService manages the employee/customer directory over the flat
// persons table, going through the person mapper in both directions.
type PersonService struct {
	store *store.Store
	log   *zap.Logger
}

// NewPersonService creates the person service.
func NewPersonService(s *store.Store, log *zap.Logger) *PersonService {
	return &PersonService{store: s, log: log}
}

func (s *PersonService) validateCore(c person.Core, excludeID uint) error {
	if c.Name == "" {
		return apperr.Missing("person", "name")
	}
	if c.Email == "" {
		return apperr.Missing("person", "email")
	}
	taken, err := s.store.PersonEmailTaken(c.Email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Duplicate("person", "email", c.Email)
	}
	return nil
}

// CreateEmployee validates and stores an employee variant.
func (s *PersonService) CreateEmployee(e person.Employee) (*person.Employee, error) {
	if err := s.validateCore(e.Core, 0); err != nil {
		return nil, err
	}
	if e.EmployeeID == "" {
		return nil, apperr.Missing("employee", "employee_id")
	}
	if e.Position != "" && !e.Position.Valid() {
		return nil, apperr.InvalidValue("employee", "position", string(e.Position))
	}
	taken, err := s.store.EmployeeIDTaken(e.EmployeeID, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Duplicate("employee", "employee_id", e.EmployeeID)
	}
	if e.HireDate.IsZero() {
		e.HireDate = time.Now()
	}

	rec := person.ToRecord(e)
	if err := s.store.CreatePerson(&rec); err != nil {
		return nil, err
	}
	variant, err := person.FromRecord(rec)
	if err != nil {
		return nil, err
	}
	created := variant.(person.Employee)
	s.log.Info("employee created",
		zap.Uint("person_id", created.ID),
		zap.String("employee_id", created.EmployeeID))
	return &created, nil
}

// CreateCustomer validates and stores a customer variant. Total spent
// defaults to zero and the customer type to regular.
func (s *PersonService) CreateCustomer(c person.Customer) (*person.Customer, error) {
	if err := s.validateCore(c.Core, 0); err != nil {
		return nil, err
	}
	if c.CustomerID == "" {
		return nil, apperr.Missing("customer", "customer_id")
	}
	if c.CustomerType == "" {
		c.CustomerType = model.CustomerTypeRegular
	}
	if !c.CustomerType.Valid() {
		return nil, apperr.InvalidValue("customer", "customer_type", string(c.CustomerType))
	}
	taken, err := s.store.CustomerIDTaken(c.CustomerID, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Duplicate("customer", "customer_id", c.CustomerID)
	}
	if c.RegistrationDate.IsZero() {
		c.RegistrationDate = time.Now()
	}

	rec := person.ToRecord(c)
	if err := s.store.CreatePerson(&rec); err != nil {
		return nil, err
	}
	variant, err := person.FromRecord(rec)
	if err != nil {
		return nil, err
	}
	created := variant.(person.Customer)
	s.log.Info("customer created",
		zap.Uint("person_id", created.ID),
		zap.String("customer_id", created.CustomerID))
	return &created, nil
}

// Get fetches a person by key as its typed variant.
func (s *PersonService) Get(id uint) (person.Variant, error) {
	rec, err := s.store.GetPerson(id)
	if err != nil {
		return nil, err
	}
	return person.FromRecord(*rec)
}

// List returns every person as its typed variant.
func (s *PersonService) List() ([]person.Variant, error) {
	recs, err := s.store.ListPersons()
	if err != nil {
		return nil, err
	}
	return s.mapAll(recs)
}

// ListEmployees returns all employees.
func (s *PersonService) ListEmployees() ([]person.Employee, error) {
	recs, err := s.store.PersonsByType(model.PersonTypeEmployee)
	if err != nil {
		return nil, err
	}
	employees := make([]person.Employee, 0, len(recs))
	for _, rec := range recs {
		variant, err := person.FromRecord(rec)
		if err != nil {
			return nil, err
		}
		employees = append(employees, variant.(person.Employee))
	}
	return employees, nil
}

// ListCustomers returns all customers.
func (s *PersonService) ListCustomers() ([]person.Customer, error) {
	recs, err := s.store.PersonsByType(model.PersonTypeCustomer)
	if err != nil {
		return nil, err
	}
	customers := make([]person.Customer, 0, len(recs))
	for _, rec := range recs {
		variant, err := person.FromRecord(rec)
		if err != nil {
			return nil, err
		}
		customers = append(customers, variant.(person.Customer))
	}
	return customers, nil
}

// Delete removes a person by key.
func (s *PersonService) Delete(id uint) error {
	if _, err := s.store.GetPerson(id); err != nil {
		return err
	}
	if err := s.store.DeletePerson(id); err != nil {
		return err
	}
	s.log.Info("person deleted", zap.Uint("person_id", id))
	return nil
}

func (s *PersonService) mapAll(recs []model.Person) ([]person.Variant, error) {
	variants := make([]person.Variant, 0, len(recs))
	for _, rec := range recs {
		v, err := person.FromRecord(rec)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, nil
}
