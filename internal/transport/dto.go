package transport

import "github.com/minipos/minipos/internal/models"

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	AccessToken string `json:"accessToken"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type CustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type ItemRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type OrderLineRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerID   string             `json:"customerId"`
	CustomerName string             `json:"customerName"`
	Items        []OrderLineRequest `json:"items"`
	Status       string             `json:"status"`
}

type UpdateOrderRequest struct {
	CustomerID   *string            `json:"customerId"`
	CustomerName *string            `json:"customerName"`
	Items        []OrderLineRequest `json:"items"`
	Status       *string            `json:"status"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderLineDetail pairs a stored line snapshot with the item's current record,
// when it still exists.
type OrderLineDetail struct {
	models.OrderItem
	CurrentItem *models.Item `json:"item,omitempty"`
}

// OrderDetail is the read-time enriched view of an order. The snapshot fields
// inside the embedded Order are untouched; Customer and Lines carry the
// current state of the referenced records.
type OrderDetail struct {
	models.Order
	Customer *models.Customer  `json:"customer,omitempty"`
	Lines    []OrderLineDetail `json:"lines,omitempty"`
}
