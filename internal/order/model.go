package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

func Statuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusOutForDelivery, StatusDelivered, StatusCancelled}
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Statuses() {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Item is a cart line copied into an order at submission time.
type Item struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// PlaceRequest is the payload for POST /orders.
type PlaceRequest struct {
	CustomerName  string  `json:"customerName,omitempty"`
	ContactNumber string  `json:"contactNumber,omitempty"`
	Address       string  `json:"address"`
	PaymentMethod string  `json:"paymentMethod"`
	Delivery      string  `json:"delivery"`
	Notes         string  `json:"notes,omitempty"`
	Items         []Item  `json:"items"`
	Subtotal      float64 `json:"subtotal"`
	Discount      float64 `json:"discount"`
	DeliveryFee   float64 `json:"deliveryFee"`
	Total         float64 `json:"total"`
}

type Order struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId,omitempty"`
	CustomerName  string    `json:"customerName,omitempty"`
	ContactNumber string    `json:"contactNumber,omitempty"`
	Address       string    `json:"address"`
	PaymentMethod string    `json:"paymentMethod"`
	Status        Status    `json:"status"`
	Items         []Item    `json:"items"`
	Total         float64   `json:"total"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (o *Order) Validate() error {
	switch {
	case strings.TrimSpace(o.ID) == "":
		return errors.New("order: missing id")
	case o.Status == "":
		return fmt.Errorf("order %s: missing status", o.ID)
	}
	return nil
}

// ListQuery pages through orders. Status filters when set.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
	Status Status
}

type List struct {
	Items []Order
	Total int
}
