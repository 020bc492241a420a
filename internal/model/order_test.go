package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{
		ProductName: "Mouse",
		Quantity:    2,
		Price:       decimal.RequireFromString("99.00"),
	}
	assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("198.00")))
}

func TestRecomputeTotal(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{ProductName: "Laptop", Quantity: 1, Price: decimal.RequireFromString("5999.00")},
			{ProductName: "Mouse", Quantity: 2, Price: decimal.RequireFromString("99.00")},
		},
	}
	order.RecomputeTotal()
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("6197.00")),
		"got %s", order.TotalAmount)
}

func TestRecomputeTotalEmptyOrder(t *testing.T) {
	order := Order{TotalAmount: decimal.RequireFromString("42.00")}
	order.RecomputeTotal()
	assert.True(t, order.TotalAmount.IsZero())
}

func TestRecomputeTotalExactDecimals(t *testing.T) {
	// 0.1 * 3 must be exactly 0.3, not a float approximation.
	order := Order{
		Items: []OrderItem{
			{ProductName: "Sticker", Quantity: 3, Price: decimal.RequireFromString("0.10")},
		},
	}
	order.RecomputeTotal()
	assert.Equal(t, "0.3", order.TotalAmount.String())
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, s.Valid(), "%s should be valid", s)
	}
	assert.False(t, OrderStatus("teleported").Valid())
	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("PENDING").Valid(), "status values are lowercase")
}
