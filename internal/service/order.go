package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/model"
	"backoffice-service/internal/store"
)

// OrderService owns the order aggregate: the order row plus its items are
// mutated and persisted as one unit, and the total is recomputed after
// every item change so a stale total never reaches the store.
type OrderService struct {
	store *store.Store
	log   *zap.Logger
}

// NewOrderService creates the order service.
func NewOrderService(s *store.Store, log *zap.Logger) *OrderService {
	return &OrderService{store: s, log: log}
}

// NewItem describes one order line on creation.
type NewItem struct {
	ProductName string          `json:"product_name" validate:"required"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	Price       decimal.Decimal `json:"price"`
}

// NewOrder describes an order to create. An empty OrderNumber gets a
// generated one.
type NewOrder struct {
	OrderNumber string            `json:"order_number"`
	UserID      uint              `json:"user_id" validate:"required"`
	Status      model.OrderStatus `json:"status"`
	Items       []NewItem         `json:"items"`
}

// Create validates the candidate order and persists it atomically with its
// items. The total is computed from the items before the write.
func (s *OrderService) Create(in NewOrder) (*model.Order, error) {
	if _, err := s.store.GetUser(in.UserID); err != nil {
		return nil, err
	}
	number := in.OrderNumber
	if number == "" {
		number = generateOrderNumber()
	}
	taken, err := s.store.OrderNumberTaken(number, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Duplicate("order", "order_number", number)
	}
	status := in.Status
	if status == "" {
		status = model.OrderStatusPending
	}
	if !status.Valid() {
		return nil, apperr.InvalidValue("order", "status", string(status))
	}

	order := &model.Order{
		OrderNumber: number,
		UserID:      in.UserID,
		Status:      status,
	}
	for _, item := range in.Items {
		line := model.OrderItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
		if err := validateOrderItem(&line); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, line)
	}
	order.RecomputeTotal()

	if err := s.store.WithTx(func(tx *store.Store) error {
		return tx.CreateOrder(order)
	}); err != nil {
		return nil, err
	}
	s.log.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("total_amount", order.TotalAmount.String()),
		zap.Int("items", len(order.Items)))
	return order, nil
}

// AddItem appends an item to the order's owned collection, sets its owning
// reference and recomputes the total, all in one transaction.
func (s *OrderService) AddItem(orderID uint, in NewItem) (*model.Order, error) {
	order, err := s.store.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	item := model.OrderItem{
		OrderID:     order.ID,
		ProductName: in.ProductName,
		Quantity:    in.Quantity,
		Price:       in.Price,
	}
	if err := validateOrderItem(&item); err != nil {
		return nil, err
	}
	if err := s.store.WithTx(func(tx *store.Store) error {
		if err := tx.CreateOrderItem(&item); err != nil {
			return err
		}
		order.Items = append(order.Items, item)
		order.RecomputeTotal()
		return tx.SaveOrder(order)
	}); err != nil {
		return nil, err
	}
	s.log.Info("order item added",
		zap.Uint("order_id", order.ID),
		zap.String("product_name", item.ProductName),
		zap.String("total_amount", order.TotalAmount.String()))
	return order, nil
}

// RemoveItem removes an item the order owns and recomputes the total.
// Removing an item that belongs to another order fails with NotOwned and
// leaves the order unchanged.
func (s *OrderService) RemoveItem(orderID, itemID uint) (*model.Order, error) {
	order, err := s.store.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	item, err := s.store.GetOrderItem(itemID)
	if err != nil {
		return nil, err
	}
	if item.OrderID != order.ID {
		return nil, apperr.NotOwned("order item", item.ID, "order", order.ID)
	}
	if err := s.store.WithTx(func(tx *store.Store) error {
		if err := tx.DeleteOrderItem(item.ID); err != nil {
			return err
		}
		kept := order.Items[:0]
		for _, it := range order.Items {
			if it.ID != item.ID {
				kept = append(kept, it)
			}
		}
		order.Items = kept
		order.RecomputeTotal()
		return tx.SaveOrder(order)
	}); err != nil {
		return nil, err
	}
	s.log.Info("order item removed",
		zap.Uint("order_id", order.ID),
		zap.Uint("item_id", item.ID),
		zap.String("total_amount", order.TotalAmount.String()))
	return order, nil
}

// UpdateStatus moves the order to a new lifecycle state.
func (s *OrderService) UpdateStatus(orderID uint, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, apperr.InvalidValue("order", "status", string(status))
	}
	order, err := s.store.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	order.Status = status
	if err := s.store.SaveOrder(order); err != nil {
		return nil, err
	}
	s.log.Info("order status updated",
		zap.Uint("order_id", order.ID),
		zap.String("status", string(status)))
	return order, nil
}

// Delete removes the order and cascades to its items so none of them
// persists without an owner.
func (s *OrderService) Delete(orderID uint) error {
	if _, err := s.store.GetOrder(orderID); err != nil {
		return err
	}
	err := s.store.WithTx(func(tx *store.Store) error {
		if err := tx.DeleteItemsByOrder(orderID); err != nil {
			return err
		}
		return tx.DeleteOrder(orderID)
	})
	if err == nil {
		s.log.Info("order deleted", zap.Uint("order_id", orderID))
	}
	return err
}

// Get fetches an order with its items.
func (s *OrderService) Get(orderID uint) (*model.Order, error) {
	return s.store.GetOrder(orderID)
}

// ByNumber fetches an order by its unique order number.
func (s *OrderService) ByNumber(number string) (*model.Order, error) {
	return s.store.OrderByNumber(number)
}

// List returns all orders.
func (s *OrderService) List() ([]model.Order, error) {
	return s.store.ListOrders()
}

// ListPage returns one page of orders plus the total count.
func (s *OrderService) ListPage(p store.Page) ([]model.Order, int64, error) {
	return s.store.ListOrdersPage(p)
}

// ByUser returns the orders owned by the user.
func (s *OrderService) ByUser(userID uint) ([]model.Order, error) {
	if _, err := s.store.GetUser(userID); err != nil {
		return nil, err
	}
	return s.store.OrdersByUser(userID)
}

// ByStatus returns the orders in the given state.
func (s *OrderService) ByStatus(status model.OrderStatus) ([]model.Order, error) {
	if !status.Valid() {
		return nil, apperr.InvalidValue("order", "status", string(status))
	}
	return s.store.OrdersByStatus(status)
}

// ByTotalBetween returns orders whose total lies in [min, max].
func (s *OrderService) ByTotalBetween(min, max decimal.Decimal) ([]model.Order, error) {
	return s.store.OrdersByTotalBetween(min, max)
}

// ByCreatedBetween returns orders created in [start, end].
func (s *OrderService) ByCreatedBetween(start, end time.Time) ([]model.Order, error) {
	return s.store.OrdersByCreatedBetween(start, end)
}

// Statistics aggregates count/sum/avg over all orders.
func (s *OrderService) Statistics() (*store.OrderStatistics, error) {
	return s.store.GetOrderStatistics()
}

// StatisticsByUser aggregates count/sum/avg over one user's orders.
func (s *OrderService) StatisticsByUser(userID uint) (*store.OrderStatistics, error) {
	if _, err := s.store.GetUser(userID); err != nil {
		return nil, err
	}
	return s.store.GetOrderStatisticsByUser(userID)
}

func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%s", uuid.New().String())
}
