package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minipos/minipos/internal/models"
)

func TestCustomerCRUD(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.signupAndLogin()

	customerID := env.createCustomer(token)

	// Duplicate email conflicts.
	rec := env.request(http.MethodPost, "/api/customers", token, map[string]any{
		"name":    "Other Ann",
		"email":   "ann@x.com",
		"phone":   "0987654321",
		"address": "34 Side St",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	// Invalid payload fails with the offending fields named.
	rec = env.request(http.MethodPost, "/api/customers", token, map[string]any{
		"name": "B",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "email")

	rec = env.request(http.MethodGet, "/api/customers/"+customerID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var customer models.Customer
	decodeBody(t, rec, &customer)
	assert.Equal(t, "Ann", customer.Name)

	rec = env.request(http.MethodPut, "/api/customers/"+customerID, token, map[string]any{
		"name":    "Ann Smith",
		"email":   "ann@x.com",
		"phone":   "1234567890",
		"address": "12 Main St",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(http.MethodGet, "/api/customers/no-such-id", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.request(http.MethodDelete, "/api/customers/"+customerID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.request(http.MethodDelete, "/api/customers/"+customerID, token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestItemCRUD(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.signupAndLogin()

	itemID := env.createItem(token, "Pen", 2)

	rec := env.request(http.MethodPost, "/api/items", token, map[string]any{
		"name":  "Pen",
		"price": -1,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "price")

	rec = env.request(http.MethodPut, "/api/items/"+itemID, token, map[string]any{
		"name":  "Blue Pen",
		"price": 2.5,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var item models.Item
	decodeBody(t, rec, &item)
	assert.Equal(t, "Blue Pen", item.Name)
	assert.Equal(t, 2.5, item.Price)

	rec = env.request(http.MethodGet, "/api/items/no-such-id", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.request(http.MethodDelete, "/api/items/"+itemID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.request(http.MethodGet, "/api/items/"+itemID, token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestItemSearch_Handler(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.signupAndLogin()

	rec := env.request(http.MethodGet, "/api/items/search", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Without an Elasticsearch connection the search surface is off.
	rec = env.request(http.MethodGet, "/api/items/search?q=pen", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "search is not configured", errorMessage(t, rec))
}
