package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"backoffice-service/internal/model"
	"backoffice-service/internal/person"
	"backoffice-service/internal/store"
)

// DemoService walks every subsystem end to end: CRUD, the membership
// relation, the person hierarchy, derived queries, the order aggregate,
// batch writes and transactional rollback. Each run returns a summary the
// demo endpoints serve as JSON.
type DemoService struct {
	store       *store.Store
	users       *UserService
	departments *DepartmentService
	membership  *MembershipService
	orders      *OrderService
	persons     *PersonService
	log         *zap.Logger
}

// NewDemoService creates the demo service over the other services.
func NewDemoService(
	s *store.Store,
	users *UserService,
	departments *DepartmentService,
	membership *MembershipService,
	orders *OrderService,
	persons *PersonService,
	log *zap.Logger,
) *DemoService {
	return &DemoService{
		store:       s,
		users:       users,
		departments: departments,
		membership:  membership,
		orders:      orders,
		persons:     persons,
		log:         log,
	}
}

func demoTag() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// RunBasicCrud creates, reads, updates and deletes one user.
func (d *DemoService) RunBasicCrud() (map[string]interface{}, error) {
	tag := demoTag()
	age := 25
	created, err := d.users.Create(UserInput{
		Username: "demo_user_" + tag,
		Email:    "demo_" + tag + "@example.com",
		Age:      &age,
	})
	if err != nil {
		return nil, err
	}
	fetched, err := d.users.Get(created.ID)
	if err != nil {
		return nil, err
	}
	updated, err := d.users.UpdateAge(fetched.ID, 26)
	if err != nil {
		return nil, err
	}
	if err := d.users.Delete(updated.ID); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"created_id":  created.ID,
		"updated_age": *updated.Age,
		"deleted":     true,
	}, nil
}

// RunRelationships attaches users to departments both ways and shows the
// two derived sides staying in step.
func (d *DemoService) RunRelationships() (map[string]interface{}, error) {
	tag := demoTag()
	tech, err := d.departments.Create(DepartmentInput{Name: "Engineering " + tag, Description: "Product development"})
	if err != nil {
		return nil, err
	}
	sales, err := d.departments.Create(DepartmentInput{Name: "Sales " + tag, Description: "Market outreach"})
	if err != nil {
		return nil, err
	}
	age := 28
	user, err := d.users.Create(UserInput{
		Username: "relationship_demo_" + tag,
		Email:    "relationship_" + tag + "@example.com",
		Age:      &age,
	})
	if err != nil {
		return nil, err
	}
	if err := d.membership.Attach(user.ID, tech.ID); err != nil {
		return nil, err
	}
	if err := d.membership.Attach(user.ID, sales.ID); err != nil {
		return nil, err
	}
	departments, err := d.membership.DepartmentsOf(user.ID)
	if err != nil {
		return nil, err
	}
	if err := d.membership.Detach(user.ID, tech.ID); err != nil {
		return nil, err
	}
	remaining, err := d.membership.DepartmentsOf(user.ID)
	if err != nil {
		return nil, err
	}
	techUsers, err := d.membership.UsersOf(tech.ID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"user_id":                 user.ID,
		"attached_departments":    len(departments),
		"after_detach":            len(remaining),
		"tech_users_after_detach": len(techUsers),
	}, nil
}

// RunInheritance stores one employee and one customer in the shared
// persons table and reads them back as their typed variants.
func (d *DemoService) RunInheritance() (map[string]interface{}, error) {
	tag := demoTag()
	employee, err := d.persons.CreateEmployee(person.Employee{
		Core: person.Core{
			Name:  "Demo Employee",
			Email: "employee_" + tag + "@company.com",
			Phone: "13800138000",
		},
		EmployeeID: "EMP-" + tag,
		Salary:     decimal.NewFromInt(8000),
		Position:   model.PositionJuniorDeveloper,
		Department: "Engineering",
	})
	if err != nil {
		return nil, err
	}
	customer, err := d.persons.CreateCustomer(person.Customer{
		Core: person.Core{
			Name:  "Demo Customer",
			Email: "customer_" + tag + "@example.com",
			Phone: "13900139000",
		},
		CustomerID:   "CUST-" + tag,
		TotalSpent:   decimal.NewFromInt(5000),
		CustomerType: model.CustomerTypeVIP,
		Address:      "100 Market Street",
	})
	if err != nil {
		return nil, err
	}
	employeeBack, err := d.persons.Get(employee.ID)
	if err != nil {
		return nil, err
	}
	customerBack, err := d.persons.Get(customer.ID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"employee_id":   employee.ID,
		"employee_type": employeeBack.PersonType(),
		"customer_id":   customer.ID,
		"customer_type": customerBack.PersonType(),
	}, nil
}

// RunQueries exercises the derived query surface: exact match, range,
// keyword search, statistics and projections.
func (d *DemoService) RunQueries() (map[string]interface{}, error) {
	byAge, err := d.users.ByAge(25)
	if err != nil {
		return nil, err
	}
	byRange, err := d.users.ByAgeBetween(20, 30)
	if err != nil {
		return nil, err
	}
	byKeyword, err := d.users.SearchByUsername("demo")
	if err != nil {
		return nil, err
	}
	stats, err := d.users.Statistics()
	if err != nil {
		return nil, err
	}
	usernames, err := d.users.Usernames()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"age_25":         len(byAge),
		"age_20_to_30":   len(byRange),
		"keyword_demo":   len(byKeyword),
		"statistics":     stats,
		"username_count": len(usernames),
	}, nil
}

// RunOrderOperations builds an order aggregate item by item and shows the
// derived total tracking every mutation.
func (d *DemoService) RunOrderOperations() (map[string]interface{}, error) {
	tag := demoTag()
	age := 25
	user, err := d.users.Create(UserInput{
		Username: "order_demo_" + tag,
		Email:    "order_" + tag + "@example.com",
		Age:      &age,
	})
	if err != nil {
		return nil, err
	}
	order, err := d.orders.Create(NewOrder{UserID: user.ID})
	if err != nil {
		return nil, err
	}
	order, err = d.orders.AddItem(order.ID, NewItem{
		ProductName: "Laptop",
		Quantity:    1,
		Price:       decimal.RequireFromString("5999.00"),
	})
	if err != nil {
		return nil, err
	}
	order, err = d.orders.AddItem(order.ID, NewItem{
		ProductName: "Mouse",
		Quantity:    2,
		Price:       decimal.RequireFromString("99.00"),
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"item_count":   len(order.Items),
		"total_amount": order.TotalAmount.String(),
	}, nil
}

// RunBatchOperations creates several users in one transaction and removes
// them again.
func (d *DemoService) RunBatchOperations() (map[string]interface{}, error) {
	tag := demoTag()
	inputs := make([]UserInput, 0, 3)
	for i := 1; i <= 3; i++ {
		age := 24 + i
		inputs = append(inputs, UserInput{
			Username: fmt.Sprintf("batch_user_%d_%s", i, tag),
			Email:    fmt.Sprintf("batch_%d_%s@example.com", i, tag),
			Age:      &age,
		})
	}
	created, err := d.users.CreateBatch(inputs)
	if err != nil {
		return nil, err
	}
	for _, u := range created {
		if err := d.users.Delete(u.ID); err != nil {
			return nil, err
		}
	}
	return map[string]interface{}{
		"batch_created": len(created),
		"batch_deleted": len(created),
	}, nil
}

// errStagedRollback is the deliberate failure the rollback demo raises
// after a successful save, so the surrounding transaction visibly undoes
// the write.
var errStagedRollback = errors.New("staged failure after save")

// RunTransactionRollback saves a user inside a transaction, then fails the
// transaction on purpose and shows that the save did not stick.
func (d *DemoService) RunTransactionRollback() (map[string]interface{}, error) {
	before, err := d.store.CountUsers()
	if err != nil {
		return nil, err
	}
	tag := demoTag()
	txErr := d.store.WithTx(func(tx *store.Store) error {
		user := &model.User{
			Username: "rollback_demo_" + tag,
			Email:    "rollback_" + tag + "@example.com",
		}
		if err := tx.CreateUser(user); err != nil {
			return err
		}
		return errStagedRollback
	})
	if !errors.Is(txErr, errStagedRollback) {
		return nil, txErr
	}
	after, err := d.store.CountUsers()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"users_before": before,
		"users_after":  after,
		"rolled_back":  before == after,
	}, nil
}

// RunAll runs every demonstration in order and collects the summaries.
func (d *DemoService) RunAll() (map[string]interface{}, error) {
	runs := []struct {
		name string
		fn   func() (map[string]interface{}, error)
	}{
		{"basic_crud", d.RunBasicCrud},
		{"relationships", d.RunRelationships},
		{"inheritance", d.RunInheritance},
		{"queries", d.RunQueries},
		{"orders", d.RunOrderOperations},
		{"batch", d.RunBatchOperations},
		{"transaction_rollback", d.RunTransactionRollback},
	}
	results := make(map[string]interface{}, len(runs))
	for _, run := range runs {
		summary, err := run.fn()
		if err != nil {
			d.log.Error("demo step failed", zap.String("step", run.name), zap.Error(err))
			return nil, fmt.Errorf("demo %s: %w", run.name, err)
		}
		results[run.name] = summary
	}
	return results, nil
}
