package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backoffice-service/internal/service"
	"backoffice-service/internal/store"
	"backoffice-service/pkg/logger"
	"backoffice-service/prometheus"
)

// UserHandler serves the /api/users surface.
type UserHandler struct {
	users      *service.UserService
	membership *service.MembershipService
}

// NewUserHandler creates the user handler.
func NewUserHandler(users *service.UserService, membership *service.MembershipService) *UserHandler {
	return &UserHandler{users: users, membership: membership}
}

// Register mounts the user routes on the group.
func (h *UserHandler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.POST("/batch", h.CreateBatch)
	g.GET("/page", h.ListPage)
	g.GET("/stats", h.Statistics)
	g.GET("/usernames", h.Usernames)
	g.GET("/emails", h.Emails)
	g.GET("/search", h.Search)
	g.GET("/email-suffix", h.ByEmailSuffix)
	g.GET("/created-after", h.CreatedAfter)
	g.GET("/username/:username", h.ByUsername)
	g.GET("/email/:email", h.ByEmail)
	g.GET("/age/range", h.ByAgeRange)
	g.GET("/age/above/:age", h.ByAgeGreaterThan)
	g.GET("/age/:age", h.ByAge)
	g.GET("/age/:age/count", h.CountByAge)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id/age", h.UpdateAge)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/departments", h.Departments)
	g.POST("/:id/departments/:department_id", h.AttachDepartment)
	g.DELETE("/:id/departments/:department_id", h.DetachDepartment)
}

// List returns all users.
func (h *UserHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "list")

	users, err := h.users.List()
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, users)
}

// ListPage returns one page of users.
func (h *UserHandler) ListPage(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "list")

	page := parsePage(c)
	users, total, err := h.users.ListPage(page)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"content": users,
		"total":   total,
		"page":    page.Page,
		"size":    page.Size,
	})
}

// Get returns one user by id.
func (h *UserHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "read")

	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}
	user, err := h.users.Get(id)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Create inserts a new user.
func (h *UserHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "create")

	var req service.UserInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse user creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	user, err := h.users.Create(req)
	if err != nil {
		return writeError(c, log, err)
	}
	log.Info("User created", zap.Uint("id", user.ID), zap.String("username", user.Username))
	return c.JSON(http.StatusCreated, user)
}

// CreateBatch inserts several users in one transaction.
func (h *UserHandler) CreateBatch(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "create")

	var req []service.UserInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse batch creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if len(req) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one user is required"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	users, err := h.users.CreateBatch(req)
	if err != nil {
		return writeError(c, log, err)
	}
	log.Info("Users created in batch", zap.Int("count", len(users)))
	return c.JSON(http.StatusCreated, users)
}

// Update writes back a user's fields.
func (h *UserHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "update")

	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}
	var req service.UserInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse user update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	user, err := h.users.Update(id, req)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateAge changes only the user's age.
func (h *UserHandler) UpdateAge(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "update")

	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}
	var req struct {
		Age *int `json:"age"`
	}
	if err := c.Bind(&req); err != nil || req.Age == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "age is required"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	user, err := h.users.UpdateAge(id, *req.Age)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user and everything it owns.
func (h *UserHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "delete")

	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.users.Delete(id); err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}

// ByUsername returns one user by username.
func (h *UserHandler) ByUsername(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "read")

	user, err := h.users.ByUsername(c.Param("username"))
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, user)
}

// ByEmail returns one user by email.
func (h *UserHandler) ByEmail(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "read")

	user, err := h.users.ByEmail(c.Param("email"))
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, user)
}

// ByAge returns users with exactly the given age.
func (h *UserHandler) ByAge(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "list")

	age, err := strconv.Atoi(c.Param("age"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid age"})
	}
	users, err := h.users.ByAge(age)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, users)
}

// ByAgeRange returns users with age in [min_age, max_age].
func (h *UserHandler) ByAgeRange(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "list")

	minAge, err1 := strconv.Atoi(c.QueryParam("min_age"))
	maxAge, err2 := strconv.Atoi(c.QueryParam("max_age"))
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "min_age and max_age are required"})
	}
	users, err := h.users.ByAgeBetween(minAge, maxAge)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, users)
}

// ByAgeGreaterThan returns users strictly older than the given age.
func (h *UserHandler) ByAgeGreaterThan(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "list")

	age, err := strconv.Atoi(c.Param("age"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid age"})
	}
	users, err := h.users.ByAgeGreaterThan(age)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, users)
}

// CountByAge returns the number of users with exactly the given age.
func (h *UserHandler) CountByAge(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "read")

	age, err := strconv.Atoi(c.Param("age"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid age"})
	}
	count, err := h.users.CountByAge(age)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"age": age, "count": count})
}

// Search returns users whose username contains the keyword.
func (h *UserHandler) Search(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "list")

	keyword := c.QueryParam("keyword")
	if keyword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "keyword is required"})
	}
	users, err := h.users.SearchByUsername(keyword)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, users)
}

// ByEmailSuffix returns users whose email ends with the suffix.
func (h *UserHandler) ByEmailSuffix(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "list")

	suffix := c.QueryParam("suffix")
	if suffix == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "suffix is required"})
	}
	users, err := h.users.ByEmailSuffix(suffix)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, users)
}

// CreatedAfter returns users created after the given RFC 3339 time.
func (h *UserHandler) CreatedAfter(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "list")

	since, err := time.Parse(time.RFC3339, c.QueryParam("since"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "since must be RFC 3339"})
	}
	users, err := h.users.CreatedAfter(since)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, users)
}

// Statistics returns count/avg/max/min over users.
func (h *UserHandler) Statistics(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "read")

	stats, err := h.users.Statistics()
	if err != nil {
		return writeError(c, log, err)
	}
	prometheus.UpdateEntityCount("user", stats.Count)
	return c.JSON(http.StatusOK, stats)
}

// Usernames returns the username projection.
func (h *UserHandler) Usernames(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "list")

	names, err := h.users.Usernames()
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, names)
}

// Emails returns the email projection.
func (h *UserHandler) Emails(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "list")

	emails, err := h.users.Emails()
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, emails)
}

// Departments lists the departments the user is attached to.
func (h *UserHandler) Departments(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("user", "read")

	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}
	departments, err := h.membership.DepartmentsOf(id)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, departments)
}

// AttachDepartment links the user to the department.
func (h *UserHandler) AttachDepartment(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRelationshipOperation("attach")

	userID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}
	departmentID, ok := parseID(c, "department_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid department ID"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := h.membership.Attach(userID, departmentID); err != nil {
		return writeError(c, log, err)
	}
	log.Info("User attached to department",
		zap.Uint("user_id", userID),
		zap.Uint("department_id", departmentID))
	return c.JSON(http.StatusOK, echo.Map{"message": "attached"})
}

// DetachDepartment unlinks the user from the department.
func (h *UserHandler) DetachDepartment(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordRelationshipOperation("detach")

	userID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}
	departmentID, ok := parseID(c, "department_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid department ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.membership.Detach(userID, departmentID); err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "detached"})
}

// parsePage reads pagination query parameters.
func parsePage(c echo.Context) store.Page {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	return store.Page{
		Page:    page,
		Size:    size,
		SortBy:  c.QueryParam("sort_by"),
		SortDir: c.QueryParam("sort_dir"),
	}
}
