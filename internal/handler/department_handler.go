package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice-service/internal/service"
	"backoffice-service/pkg/logger"
	"backoffice-service/prometheus"
)

// DepartmentHandler serves the /api/departments surface.
type DepartmentHandler struct {
	departments *service.DepartmentService
	membership  *service.MembershipService
}

// NewDepartmentHandler creates the department handler.
func NewDepartmentHandler(departments *service.DepartmentService, membership *service.MembershipService) *DepartmentHandler {
	return &DepartmentHandler{departments: departments, membership: membership}
}

// Register mounts the department routes on the group.
func (h *DepartmentHandler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/user-counts", h.WithUserCounts)
	g.GET("/search", h.Search)
	g.GET("/name/:name", h.ByName)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/users", h.Users)
}

// List returns all departments.
func (h *DepartmentHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("department", "list")

	departments, err := h.departments.List()
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, departments)
}

// Get returns one department by id.
func (h *DepartmentHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("department", "read")

	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid department ID"})
	}
	department, err := h.departments.Get(id)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, department)
}

// Create inserts a new department.
func (h *DepartmentHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("department", "create")

	var req service.DepartmentInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse department creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	department, err := h.departments.Create(req)
	if err != nil {
		return writeError(c, log, err)
	}
	log.Info("Department created", zap.Uint("id", department.ID), zap.String("name", department.Name))
	return c.JSON(http.StatusCreated, department)
}

// Update writes back a department's fields.
func (h *DepartmentHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("department", "update")

	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid department ID"})
	}
	var req service.DepartmentInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse department update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	department, err := h.departments.Update(id, req)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, department)
}

// Delete removes a department and its memberships.
func (h *DepartmentHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("department", "delete")

	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid department ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.departments.Delete(id); err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "department deleted"})
}

// ByName returns one department by its unique name.
func (h *DepartmentHandler) ByName(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("department", "read")

	department, err := h.departments.ByName(c.Param("name"))
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, department)
}

// Search looks up departments by name or description keyword.
func (h *DepartmentHandler) Search(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("department", "list")

	if keyword := c.QueryParam("name"); keyword != "" {
		departments, err := h.departments.SearchByName(keyword)
		if err != nil {
			return writeError(c, log, err)
		}
		return c.JSON(http.StatusOK, departments)
	}
	if keyword := c.QueryParam("description"); keyword != "" {
		departments, err := h.departments.SearchByDescription(keyword)
		if err != nil {
			return writeError(c, log, err)
		}
		return c.JSON(http.StatusOK, departments)
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "name or description keyword is required"})
}

// WithUserCounts returns every department with its member count.
func (h *DepartmentHandler) WithUserCounts(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("department", "list")

	counts, err := h.departments.WithUserCounts()
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, counts)
}

// Users lists the members of the department.
func (h *DepartmentHandler) Users(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("department", "read")

	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid department ID"})
	}
	users, err := h.membership.UsersOf(id)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, users)
}
