package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice-service/internal/person"
	"backoffice-service/internal/service"
	"backoffice-service/pkg/logger"
	"backoffice-service/prometheus"
)

// PersonHandler serves the /api/persons surface.
type PersonHandler struct {
	persons *service.PersonService
}

// NewPersonHandler creates the person handler.
func NewPersonHandler(persons *service.PersonService) *PersonHandler {
	return &PersonHandler{persons: persons}
}

// Register mounts the person routes on the group.
func (h *PersonHandler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/employees", h.ListEmployees)
	g.POST("/employees", h.CreateEmployee)
	g.GET("/customers", h.ListCustomers)
	g.POST("/customers", h.CreateCustomer)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Delete)
}

// List returns every person, each rendered as its variant.
func (h *PersonHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("person", "list")

	persons, err := h.persons.List()
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, persons)
}

// Get returns one person by id.
func (h *PersonHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("person", "read")

	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid person ID"})
	}
	p, err := h.persons.Get(id)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, p)
}

// CreateEmployee inserts an EMPLOYEE person.
func (h *PersonHandler) CreateEmployee(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("person", "create")

	var req person.Employee
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse employee creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	created, err := h.persons.CreateEmployee(req)
	if err != nil {
		return writeError(c, log, err)
	}
	log.Info("Employee created", zap.Uint("id", created.ID), zap.String("employee_id", created.EmployeeID))
	return c.JSON(http.StatusCreated, created)
}

// CreateCustomer inserts a CUSTOMER person.
func (h *PersonHandler) CreateCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("person", "create")

	var req person.Customer
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse customer creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	created, err := h.persons.CreateCustomer(req)
	if err != nil {
		return writeError(c, log, err)
	}
	log.Info("Customer created", zap.Uint("id", created.ID), zap.String("customer_id", created.CustomerID))
	return c.JSON(http.StatusCreated, created)
}

// ListEmployees returns only the EMPLOYEE variants.
func (h *PersonHandler) ListEmployees(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("person", "list")

	employees, err := h.persons.ListEmployees()
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, employees)
}

// ListCustomers returns only the CUSTOMER variants.
func (h *PersonHandler) ListCustomers(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("person", "list")

	customers, err := h.persons.ListCustomers()
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, customers)
}

// Delete removes one person.
func (h *PersonHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("person", "delete")

	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid person ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.persons.Delete(id); err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "person deleted"})
}
