package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the known order states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents a user's order. TotalAmount is derived from the items
// and recomputed on every item mutation; it is never written directly.
type Order struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderNumber string          `json:"order_number" gorm:"type:varchar(64);uniqueIndex;not null"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2)"`
	Status      OrderStatus     `json:"status" gorm:"type:varchar(20);default:'pending'"`
	UserID      uint            `json:"user_id" gorm:"index;not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Items owned by this order. Deleting the order deletes its items.
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// RecomputeTotal sets TotalAmount to the exact decimal sum of the item
// subtotals. Callers must invoke it after every item add or remove and
// before the order is persisted.
func (o *Order) RecomputeTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	o.TotalAmount = total
}

// OrderItem represents a single line of an order.
type OrderItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderID     uint            `json:"order_id" gorm:"index;not null"`
	ProductName string          `json:"product_name" gorm:"type:varchar(255);not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Subtotal returns price multiplied by quantity in exact decimal arithmetic.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
