package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/minipos/minipos/internal/events"
	"github.com/minipos/minipos/internal/models"
	"github.com/minipos/minipos/internal/repo"
	"github.com/minipos/minipos/internal/transport"
)

func InitTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Item{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newOrderEnv(t *testing.T) (*OrderService, *repo.GormRepo) {
	t.Helper()
	r := &repo.GormRepo{DB: InitTestDB(t)}
	svc := &OrderService{Repo: r, Producer: events.NewProducer(nil)}
	return svc, r
}

func seedCustomer(t *testing.T, r *repo.GormRepo) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		Name:    "Ann",
		Email:   "ann@x.com",
		Phone:   "1234567890",
		Address: "12 Main St",
	}
	require.NoError(t, r.CreateCustomer(context.Background(), customer))
	return customer
}

func seedItem(t *testing.T, r *repo.GormRepo, name string, price float64) *models.Item {
	t.Helper()
	item := &models.Item{Name: name, Price: price}
	require.NoError(t, r.CreateItem(context.Background(), item))
	return item
}

func TestOrderCreate_ComputesSubtotalsAndTotal(t *testing.T) {
	t.Parallel()

	svc, r := newOrderEnv(t)
	ctx := context.Background()

	customer := seedCustomer(t, r)
	pen := seedItem(t, r, "Pen", 2)
	pad := seedItem(t, r, "Notepad", 5.5)

	order, err := svc.Create(ctx, transport.CreateOrderRequest{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Items: []transport.OrderLineRequest{
			{ItemID: pen.ID, Quantity: 3},
			{ItemID: pad.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 2)
	assert.Equal(t, 6.0, order.Items[0].Subtotal)
	assert.Equal(t, 11.0, order.Items[1].Subtotal)
	assert.Equal(t, 17.0, order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "Pen", order.Items[0].ItemName)
	assert.Equal(t, 2.0, order.Items[0].Price)
}

func TestOrderCreate_SnapshotsIgnoreCallerPrices(t *testing.T) {
	t.Parallel()

	// The wire format has no price field on order lines at all; this checks
	// that snapshots come from the catalog even after the item changed.
	svc, r := newOrderEnv(t)
	ctx := context.Background()

	customer := seedCustomer(t, r)
	item := seedItem(t, r, "Pen", 2)

	order, err := svc.Create(ctx, transport.CreateOrderRequest{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Items:        []transport.OrderLineRequest{{ItemID: item.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, 6.0, order.Total)

	item.Price = 100
	require.NoError(t, r.SaveItem(ctx, item))

	stored, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, stored.Items[0].Price)
	assert.Equal(t, 6.0, stored.Total)
}

func TestOrderCreate_MissingFields(t *testing.T) {
	t.Parallel()

	svc, r := newOrderEnv(t)
	ctx := context.Background()
	customer := seedCustomer(t, r)

	_, err := svc.Create(ctx, transport.CreateOrderRequest{})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, transport.CreateOrderRequest{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestOrderCreate_UnknownCustomer(t *testing.T) {
	t.Parallel()

	svc, r := newOrderEnv(t)
	ctx := context.Background()
	item := seedItem(t, r, "Pen", 2)

	_, err := svc.Create(ctx, transport.CreateOrderRequest{
		CustomerID:   "no-such-customer",
		CustomerName: "Ann",
		Items:        []transport.OrderLineRequest{{ItemID: item.ID, Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "customer not found")
}

func TestOrderCreate_UnknownItemPersistsNothing(t *testing.T) {
	t.Parallel()

	svc, r := newOrderEnv(t)
	ctx := context.Background()

	customer := seedCustomer(t, r)
	pen := seedItem(t, r, "Pen", 2)

	_, err := svc.Create(ctx, transport.CreateOrderRequest{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Items: []transport.OrderLineRequest{
			{ItemID: pen.ID, Quantity: 1},
			{ItemID: "missing-item", Quantity: 1},
		},
	})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "missing-item")

	orders, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	var lineCount int64
	require.NoError(t, r.DB.Model(&models.OrderItem{}).Count(&lineCount).Error)
	assert.Zero(t, lineCount)
}

func TestOrderCreate_InvalidQuantityAndStatus(t *testing.T) {
	t.Parallel()

	svc, r := newOrderEnv(t)
	ctx := context.Background()

	customer := seedCustomer(t, r)
	item := seedItem(t, r, "Pen", 2)

	_, err := svc.Create(ctx, transport.CreateOrderRequest{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Items:        []transport.OrderLineRequest{{ItemID: item.ID, Quantity: 0}},
	})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, transport.CreateOrderRequest{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Items:        []transport.OrderLineRequest{{ItemID: item.ID, Quantity: 1}},
		Status:       "shipped",
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestOrderUpdateStatus(t *testing.T) {
	t.Parallel()

	svc, r := newOrderEnv(t)
	ctx := context.Background()

	customer := seedCustomer(t, r)
	item := seedItem(t, r, "Pen", 2)

	order, err := svc.Create(ctx, transport.CreateOrderRequest{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Items:        []transport.OrderLineRequest{{ItemID: item.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, order.ID, "shipped")
	require.ErrorIs(t, err, ErrValidation)

	updated, err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, updated.Status)
	assert.Equal(t, order.Total, updated.Total)
	assert.Len(t, updated.Items, 1)

	_, err = svc.UpdateStatus(ctx, "no-such-order", models.OrderStatusCancelled)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOrderUpdate_ReplacesLinesAndRecomputes(t *testing.T) {
	t.Parallel()

	svc, r := newOrderEnv(t)
	ctx := context.Background()

	customer := seedCustomer(t, r)
	pen := seedItem(t, r, "Pen", 2)
	pad := seedItem(t, r, "Notepad", 5)

	order, err := svc.Create(ctx, transport.CreateOrderRequest{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Items:        []transport.OrderLineRequest{{ItemID: pen.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, order.ID, transport.UpdateOrderRequest{
		Items: []transport.OrderLineRequest{{ItemID: pad.ID, Quantity: 4}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, pad.ID, updated.Items[0].ItemID)
	assert.Equal(t, 20.0, updated.Items[0].Subtotal)
	assert.Equal(t, 20.0, updated.Total)

	stored, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "Notepad", stored.Items[0].ItemName)
}

func TestOrderUpdate_UnknownReferences(t *testing.T) {
	t.Parallel()

	svc, r := newOrderEnv(t)
	ctx := context.Background()

	customer := seedCustomer(t, r)
	item := seedItem(t, r, "Pen", 2)

	order, err := svc.Create(ctx, transport.CreateOrderRequest{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Items:        []transport.OrderLineRequest{{ItemID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	bogus := "no-such-customer"
	_, err = svc.Update(ctx, order.ID, transport.UpdateOrderRequest{CustomerID: &bogus})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, order.ID, transport.UpdateOrderRequest{
		Items: []transport.OrderLineRequest{{ItemID: "no-such-item", Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, "no-such-order", transport.UpdateOrderRequest{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOrderList_NewestFirst(t *testing.T) {
	t.Parallel()

	svc, r := newOrderEnv(t)
	ctx := context.Background()

	customer := seedCustomer(t, r)
	item := seedItem(t, r, "Pen", 2)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, transport.CreateOrderRequest{
			CustomerID:   customer.ID,
			CustomerName: customer.Name,
			Items:        []transport.OrderLineRequest{{ItemID: item.ID, Quantity: i + 1}},
		})
		require.NoError(t, err)
	}

	orders, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for i := 1; i < len(orders); i++ {
		assert.False(t, orders[i].CreatedAt.After(orders[i-1].CreatedAt))
	}
}

func TestOrderListByCustomer_RequiresCustomer(t *testing.T) {
	t.Parallel()

	svc, r := newOrderEnv(t)
	ctx := context.Background()

	customer := seedCustomer(t, r)

	// Zero orders is fine as long as the customer exists.
	orders, err := svc.ListByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, err = svc.ListByCustomer(ctx, "no-such-customer")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOrderSnapshot_SurvivesCustomerDelete(t *testing.T) {
	t.Parallel()

	svc, r := newOrderEnv(t)
	ctx := context.Background()

	customer := seedCustomer(t, r)
	item := seedItem(t, r, "Pen", 2)

	order, err := svc.Create(ctx, transport.CreateOrderRequest{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Items:        []transport.OrderLineRequest{{ItemID: item.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	require.NoError(t, r.DeleteCustomer(ctx, customer.ID))
	require.NoError(t, r.DeleteItem(ctx, item.ID))

	stored, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", stored.CustomerName)
	assert.Equal(t, "Pen", stored.Items[0].ItemName)
	assert.Equal(t, 6.0, stored.Total)

	// The enriched view degrades gracefully: current records are gone.
	detail, err := svc.Expand(ctx, stored)
	require.NoError(t, err)
	assert.Nil(t, detail.Customer)
	require.Len(t, detail.Lines, 1)
	assert.Nil(t, detail.Lines[0].CurrentItem)
	assert.Equal(t, "Pen", detail.Lines[0].ItemName)
}

func TestOrderDelete(t *testing.T) {
	t.Parallel()

	svc, r := newOrderEnv(t)
	ctx := context.Background()

	customer := seedCustomer(t, r)
	item := seedItem(t, r, "Pen", 2)

	order, err := svc.Create(ctx, transport.CreateOrderRequest{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Items:        []transport.OrderLineRequest{{ItemID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, order.ID))
	require.ErrorIs(t, svc.Delete(ctx, order.ID), ErrNotFound)

	var lineCount int64
	require.NoError(t, r.DB.Model(&models.OrderItem{}).Count(&lineCount).Error)
	assert.Zero(t, lineCount)
}
