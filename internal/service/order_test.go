package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/model"
)

func createOrderOwner(t *testing.T, ts *testServices) *model.User {
	t.Helper()
	u, err := ts.users.Create(UserInput{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	return u
}

func TestCreateOrderComputesTotal(t *testing.T) {
	ts := newTestServices(t)
	u := createOrderOwner(t, ts)

	order, err := ts.orders.Create(NewOrder{
		OrderNumber: "ORD-1",
		UserID:      u.ID,
		Items: []NewItem{
			{ProductName: "Laptop", Quantity: 1, Price: dec("5999.00")},
			{ProductName: "Mouse", Quantity: 2, Price: dec("99.00")},
		},
	})
	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(dec("6197.00")), "got %s", order.TotalAmount)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Len(t, order.Items, 2)
}

func TestCreateOrderGeneratesNumber(t *testing.T) {
	ts := newTestServices(t)
	u := createOrderOwner(t, ts)

	order, err := ts.orders.Create(NewOrder{UserID: u.ID})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"), "got %s", order.OrderNumber)
}

func TestCreateOrderRejectsDuplicateNumber(t *testing.T) {
	ts := newTestServices(t)
	u := createOrderOwner(t, ts)
	_, err := ts.orders.Create(NewOrder{OrderNumber: "ORD-1", UserID: u.ID})
	require.NoError(t, err)

	_, err = ts.orders.Create(NewOrder{OrderNumber: "ORD-1", UserID: u.ID})
	assert.ErrorIs(t, err, apperr.ErrDuplicateKey)
}

func TestCreateOrderRejectsUnknownUser(t *testing.T) {
	ts := newTestServices(t)
	_, err := ts.orders.Create(NewOrder{UserID: 9999})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateOrderRejectsInvalidStatus(t *testing.T) {
	ts := newTestServices(t)
	u := createOrderOwner(t, ts)

	_, err := ts.orders.Create(NewOrder{UserID: u.ID, Status: "teleported"})
	assert.ErrorIs(t, err, apperr.ErrInvalidRange)
}

func TestCreateOrderValidatesItems(t *testing.T) {
	ts := newTestServices(t)
	u := createOrderOwner(t, ts)

	_, err := ts.orders.Create(NewOrder{UserID: u.ID, Items: []NewItem{
		{ProductName: "", Quantity: 1, Price: dec("1.00")},
	}})
	assert.ErrorIs(t, err, apperr.ErrMissingField)

	_, err = ts.orders.Create(NewOrder{UserID: u.ID, Items: []NewItem{
		{ProductName: "Widget", Quantity: 0, Price: dec("1.00")},
	}})
	assert.ErrorIs(t, err, apperr.ErrInvalidRange)

	_, err = ts.orders.Create(NewOrder{UserID: u.ID, Items: []NewItem{
		{ProductName: "Widget", Quantity: 1, Price: dec("-1.00")},
	}})
	assert.ErrorIs(t, err, apperr.ErrInvalidRange)

	// A free item is fine.
	_, err = ts.orders.Create(NewOrder{UserID: u.ID, Items: []NewItem{
		{ProductName: "Sample", Quantity: 1, Price: dec("0.00")},
	}})
	assert.NoError(t, err)
}

func TestAddItemRecomputesTotal(t *testing.T) {
	ts := newTestServices(t)
	u := createOrderOwner(t, ts)
	order, err := ts.orders.Create(NewOrder{UserID: u.ID, Items: []NewItem{
		{ProductName: "Laptop", Quantity: 1, Price: dec("5999.00")},
	}})
	require.NoError(t, err)

	order, err = ts.orders.AddItem(order.ID, NewItem{ProductName: "Mouse", Quantity: 2, Price: dec("99.00")})
	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(dec("6197.00")))

	// The new total is persisted, not just returned.
	got, err := ts.orders.Get(order.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(dec("6197.00")))
	assert.Len(t, got.Items, 2)
}

func TestRemoveItemRecomputesTotal(t *testing.T) {
	ts := newTestServices(t)
	u := createOrderOwner(t, ts)
	order, err := ts.orders.Create(NewOrder{UserID: u.ID, Items: []NewItem{
		{ProductName: "Laptop", Quantity: 1, Price: dec("5999.00")},
		{ProductName: "Mouse", Quantity: 2, Price: dec("99.00")},
	}})
	require.NoError(t, err)

	order, err = ts.orders.RemoveItem(order.ID, order.Items[1].ID)
	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(dec("5999.00")))
	assert.Len(t, order.Items, 1)
}

func TestRemoveItemNotOwned(t *testing.T) {
	ts := newTestServices(t)
	u := createOrderOwner(t, ts)
	first, err := ts.orders.Create(NewOrder{UserID: u.ID, Items: []NewItem{
		{ProductName: "Laptop", Quantity: 1, Price: dec("5999.00")},
	}})
	require.NoError(t, err)
	second, err := ts.orders.Create(NewOrder{UserID: u.ID, Items: []NewItem{
		{ProductName: "Mouse", Quantity: 1, Price: dec("99.00")},
	}})
	require.NoError(t, err)

	_, err = ts.orders.RemoveItem(first.ID, second.Items[0].ID)
	assert.ErrorIs(t, err, apperr.ErrNotOwned)

	// The wrongly targeted order is untouched.
	got, err := ts.orders.Get(first.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
	assert.True(t, got.TotalAmount.Equal(dec("5999.00")))
}

func TestRemoveItemNotFound(t *testing.T) {
	ts := newTestServices(t)
	u := createOrderOwner(t, ts)
	order, err := ts.orders.Create(NewOrder{UserID: u.ID})
	require.NoError(t, err)

	_, err = ts.orders.RemoveItem(order.ID, 9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateStatus(t *testing.T) {
	ts := newTestServices(t)
	u := createOrderOwner(t, ts)
	order, err := ts.orders.Create(NewOrder{UserID: u.ID})
	require.NoError(t, err)

	order, err = ts.orders.UpdateStatus(order.ID, model.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, order.Status)

	_, err = ts.orders.UpdateStatus(order.ID, "vaporized")
	assert.ErrorIs(t, err, apperr.ErrInvalidRange)
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	ts := newTestServices(t)
	u := createOrderOwner(t, ts)
	order, err := ts.orders.Create(NewOrder{UserID: u.ID, Items: []NewItem{
		{ProductName: "Laptop", Quantity: 1, Price: dec("5999.00")},
	}})
	require.NoError(t, err)

	require.NoError(t, ts.orders.Delete(order.ID))
	_, err = ts.orders.Get(order.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestOrderStatisticsThroughService(t *testing.T) {
	ts := newTestServices(t)
	u := createOrderOwner(t, ts)
	_, err := ts.orders.Create(NewOrder{OrderNumber: "ORD-1", UserID: u.ID, Items: []NewItem{
		{ProductName: "A", Quantity: 1, Price: dec("10.00")},
	}})
	require.NoError(t, err)
	_, err = ts.orders.Create(NewOrder{OrderNumber: "ORD-2", UserID: u.ID, Items: []NewItem{
		{ProductName: "B", Quantity: 3, Price: dec("10.00")},
	}})
	require.NoError(t, err)

	stats, err := ts.orders.Statistics()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Count)
	require.True(t, stats.TotalAmount.Valid)
	assert.True(t, stats.TotalAmount.Decimal.Equal(dec("40.00")))
}
