package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"backoffice-service/internal/model"
	"backoffice-service/internal/service"
	"backoffice-service/pkg/logger"
	"backoffice-service/prometheus"
)

// OrderHandler serves the /api/orders surface.
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler creates the order handler.
func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Register mounts the order routes on the group.
func (h *OrderHandler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/page", h.ListPage)
	g.GET("/stats", h.Statistics)
	g.GET("/total-range", h.ByTotalRange)
	g.GET("/created-between", h.ByCreatedBetween)
	g.GET("/number/:number", h.ByNumber)
	g.GET("/status/:status", h.ByStatus)
	g.GET("/user/:user_id", h.ByUser)
	g.GET("/user/:user_id/stats", h.StatisticsByUser)
	g.GET("/:id", h.Get)
	g.PATCH("/:id/status", h.UpdateStatus)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/items", h.AddItem)
	g.DELETE("/:id/items/:item_id", h.RemoveItem)
}

// List returns all orders.
func (h *OrderHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "list")

	orders, err := h.orders.List()
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// ListPage returns one page of orders.
func (h *OrderHandler) ListPage(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "list")

	page := parsePage(c)
	orders, total, err := h.orders.ListPage(page)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"content": orders,
		"total":   total,
		"page":    page.Page,
		"size":    page.Size,
	})
}

// Get returns one order with its items.
func (h *OrderHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "read")

	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order ID"})
	}
	order, err := h.orders.Get(id)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, order)
}

// Create places a new order with its items.
func (h *OrderHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "create")

	var req service.NewOrder
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse order creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	order, err := h.orders.Create(req)
	if err != nil {
		return writeError(c, log, err)
	}
	log.Info("Order created",
		zap.Uint("id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("total", order.TotalAmount.String()))
	return c.JSON(http.StatusCreated, order)
}

// AddItem appends an item and recomputes the total.
func (h *OrderHandler) AddItem(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "update")

	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order ID"})
	}
	var req service.NewItem
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse order item request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	order, err := h.orders.AddItem(id, req)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, order)
}

// RemoveItem deletes an item and recomputes the total.
func (h *OrderHandler) RemoveItem(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "update")

	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order ID"})
	}
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	order, err := h.orders.RemoveItem(id, itemID)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateStatus moves the order to a new status.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "update")

	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order ID"})
	}
	var req struct {
		Status model.OrderStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	order, err := h.orders.UpdateStatus(id, req.Status)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, order)
}

// Delete removes an order and its items.
func (h *OrderHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "delete")

	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.orders.Delete(id); err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "order deleted"})
}

// ByNumber returns one order by its unique order number.
func (h *OrderHandler) ByNumber(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "read")

	order, err := h.orders.ByNumber(c.Param("number"))
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, order)
}

// ByUser returns the orders placed by one user.
func (h *OrderHandler) ByUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "list")

	userID, ok := parseID(c, "user_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}
	orders, err := h.orders.ByUser(userID)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// ByStatus returns orders in the given status.
func (h *OrderHandler) ByStatus(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "list")

	orders, err := h.orders.ByStatus(model.OrderStatus(c.Param("status")))
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// ByTotalRange returns orders with total in [min, max].
func (h *OrderHandler) ByTotalRange(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "list")

	min, err1 := decimal.NewFromString(c.QueryParam("min"))
	max, err2 := decimal.NewFromString(c.QueryParam("max"))
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "min and max are required"})
	}
	orders, err := h.orders.ByTotalBetween(min, max)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// ByCreatedBetween returns orders created in the given RFC 3339 window.
func (h *OrderHandler) ByCreatedBetween(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "list")

	start, err1 := time.Parse(time.RFC3339, c.QueryParam("start"))
	end, err2 := time.Parse(time.RFC3339, c.QueryParam("end"))
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start and end must be RFC 3339"})
	}
	orders, err := h.orders.ByCreatedBetween(start, end)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// Statistics returns count/sum/average over all orders.
func (h *OrderHandler) Statistics(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "read")

	stats, err := h.orders.Statistics()
	if err != nil {
		return writeError(c, log, err)
	}
	prometheus.UpdateEntityCount("order", stats.Count)
	return c.JSON(http.StatusOK, stats)
}

// StatisticsByUser returns count/sum/average over one user's orders.
func (h *OrderHandler) StatisticsByUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordEntityOperation("order", "read")

	userID, ok := parseID(c, "user_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}
	stats, err := h.orders.StatisticsByUser(userID)
	if err != nil {
		return writeError(c, log, err)
	}
	return c.JSON(http.StatusOK, stats)
}
