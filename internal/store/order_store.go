package store

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"backoffice-service/internal/model"
)

const (
	entityOrder     = "order"
	entityOrderItem = "order item"
)

// CreateOrder inserts a new order together with any items it carries.
func (s *Store) CreateOrder(o *model.Order) error {
	return translate(entityOrder, o.OrderNumber, s.db.Create(o).Error)
}

// SaveOrder writes back the order columns. Item rows are managed through
// CreateOrderItem/DeleteOrderItem so the owned collection stays explicit.
func (s *Store) SaveOrder(o *model.Order) error {
	err := s.db.Omit("Items").Save(o).Error
	return translate(entityOrder, o.ID, err)
}

// GetOrder fetches an order with its items.
func (s *Store) GetOrder(id uint) (*model.Order, error) {
	var o model.Order
	if err := s.db.Preload("Items").First(&o, id).Error; err != nil {
		return nil, translate(entityOrder, id, err)
	}
	return &o, nil
}

// OrderByNumber fetches an order by its unique order number.
func (s *Store) OrderByNumber(number string) (*model.Order, error) {
	var o model.Order
	if err := s.db.Preload("Items").Where("order_number = ?", number).First(&o).Error; err != nil {
		return nil, translate(entityOrder, number, err)
	}
	return &o, nil
}

// OrderNumberTaken reports whether an order already holds the number.
func (s *Store) OrderNumberTaken(number string, excludeID uint) (bool, error) {
	var count int64
	err := s.db.Model(&model.Order{}).
		Where("order_number = ? AND id <> ?", number, excludeID).
		Count(&count).Error
	return count > 0, translate(entityOrder, number, err)
}

// DeleteOrder removes the order row. The order service deletes the owned
// items in the same transaction so orphans never persist.
func (s *Store) DeleteOrder(id uint) error {
	return translate(entityOrder, id, s.db.Delete(&model.Order{}, id).Error)
}

// DeleteItemsByOrder removes every item owned by the order.
func (s *Store) DeleteItemsByOrder(orderID uint) error {
	err := s.db.Where("order_id = ?", orderID).Delete(&model.OrderItem{}).Error
	return translate(entityOrderItem, orderID, err)
}

// ListOrders returns all orders with their items.
func (s *Store) ListOrders() ([]model.Order, error) {
	var orders []model.Order
	err := s.db.Preload("Items").Find(&orders).Error
	return orders, translate(entityOrder, "all", err)
}

// ListOrdersPage returns one page of orders plus the total row count.
func (s *Store) ListOrdersPage(p Page) ([]model.Order, int64, error) {
	var total int64
	if err := s.db.Model(&model.Order{}).Count(&total).Error; err != nil {
		return nil, 0, translate(entityOrder, "count", err)
	}
	var orders []model.Order
	err := p.apply(s.db.Preload("Items")).Find(&orders).Error
	return orders, total, translate(entityOrder, "page", err)
}

// OrdersByUser returns the orders owned by the user.
func (s *Store) OrdersByUser(userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.Preload("Items").Where("user_id = ?", userID).Find(&orders).Error
	return orders, translate(entityOrder, userID, err)
}

// OrdersByStatus returns the orders in the given state.
func (s *Store) OrdersByStatus(status model.OrderStatus) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.Preload("Items").Where("status = ?", status).Find(&orders).Error
	return orders, translate(entityOrder, status, err)
}

// OrdersByTotalBetween returns orders whose total is in [min, max].
func (s *Store) OrdersByTotalBetween(min, max decimal.Decimal) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.Preload("Items").
		Where("total_amount BETWEEN ? AND ?", min, max).
		Find(&orders).Error
	return orders, translate(entityOrder, "amount range", err)
}

// OrdersByCreatedBetween returns orders created in [start, end].
func (s *Store) OrdersByCreatedBetween(start, end time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.Preload("Items").
		Where("created_at BETWEEN ? AND ?", start, end).
		Find(&orders).Error
	return orders, translate(entityOrder, "time range", err)
}

// CountOrders returns the total number of orders.
func (s *Store) CountOrders() (int64, error) {
	var count int64
	err := s.db.Model(&model.Order{}).Count(&count).Error
	return count, translate(entityOrder, "count", err)
}

// OrderStatistics aggregates order totals. Sum and average are null when
// no orders match.
type OrderStatistics struct {
	Count         int64               `json:"count"`
	TotalAmount   decimal.NullDecimal `json:"total_amount"`
	AverageAmount decimal.NullDecimal `json:"average_amount"`
}

// GetOrderStatistics computes count/sum/avg over all orders.
func (s *Store) GetOrderStatistics() (*OrderStatistics, error) {
	return s.orderStatistics(s.db.Model(&model.Order{}))
}

// GetOrderStatisticsByUser computes count/sum/avg over one user's orders.
func (s *Store) GetOrderStatisticsByUser(userID uint) (*OrderStatistics, error) {
	return s.orderStatistics(s.db.Model(&model.Order{}).Where("user_id = ?", userID))
}

func (s *Store) orderStatistics(query *gorm.DB) (*OrderStatistics, error) {
	var stats OrderStatistics
	err := query.
		Select("COUNT(*) AS count, SUM(total_amount) AS total_amount, AVG(total_amount) AS average_amount").
		Scan(&stats).Error
	if err != nil {
		return nil, translate(entityOrder, "statistics", err)
	}
	return &stats, nil
}

// CreateOrderItem inserts an item row for its owning order.
func (s *Store) CreateOrderItem(item *model.OrderItem) error {
	return translate(entityOrderItem, item.ProductName, s.db.Create(item).Error)
}

// GetOrderItem fetches an item by key.
func (s *Store) GetOrderItem(id uint) (*model.OrderItem, error) {
	var item model.OrderItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, translate(entityOrderItem, id, err)
	}
	return &item, nil
}

// DeleteOrderItem removes an item row.
func (s *Store) DeleteOrderItem(id uint) error {
	return translate(entityOrderItem, id, s.db.Delete(&model.OrderItem{}, id).Error)
}
