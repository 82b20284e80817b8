package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type User struct {
	ID           string    `gorm:"primaryKey"              json:"id"`
	Name         string    `gorm:"not null"                json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"    json:"email"`
	PasswordHash string    `gorm:"not null"                json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Customer struct {
	ID      string `gorm:"primaryKey"           json:"id"`
	Name    string `gorm:"not null"             json:"name"`
	Email   string `gorm:"uniqueIndex;not null" json:"email"`
	Phone   string `gorm:"not null"             json:"phone"`
	Address string `gorm:"not null"             json:"address"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Item struct {
	ID    string  `gorm:"primaryKey" json:"id"`
	Name  string  `gorm:"not null"   json:"name"`
	Price float64 `gorm:"not null"   json:"price"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// OrderItem keeps a snapshot of the item's name and price at the time the
// order was written, so deleting the source Item later does not change it.
type OrderItem struct {
	ID       string  `gorm:"primaryKey"     json:"id"`
	OrderID  string  `gorm:"index;not null" json:"orderId"`
	ItemID   string  `gorm:"not null"       json:"itemId"`
	ItemName string  `gorm:"not null"       json:"itemName"`
	Price    float64 `gorm:"not null"       json:"price"`
	Quantity int     `gorm:"not null"       json:"quantity"`
	Subtotal float64 `gorm:"not null"       json:"subtotal"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString()
	}
	return nil
}

type Order struct {
	ID           string      `gorm:"primaryKey"               json:"id"`
	CustomerID   string      `gorm:"index;not null"           json:"customerId"`
	CustomerName string      `gorm:"not null"                 json:"customerName"`
	Items        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total        float64     `gorm:"not null"                 json:"total"`
	Date         time.Time   `gorm:"not null"                 json:"date"`
	Status       string      `gorm:"not null;default:pending" json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
