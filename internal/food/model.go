package food

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"localmart/internal/api"
	"localmart/internal/cart"
	"localmart/internal/order"
)

type Restaurant struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Cuisines        []string `json:"cuisines,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	DeliveryMinutes int      `json:"deliveryTime,omitempty"`
	IsOpen          bool     `json:"isOpen"`
	ImageURL        string   `json:"image,omitempty"`
}

func (r *Restaurant) Validate() error {
	if err := api.Required(map[string]string{"id": r.ID, "name": r.Name}); err != nil {
		return fmt.Errorf("restaurant: %w", err)
	}
	return nil
}

type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Price       float64  `json:"price"`
	OldPrice    *float64 `json:"originalPrice,omitempty"`
	Veg         bool     `json:"isVeg"`
	Available   bool     `json:"isAvailable"`
	ImageURL    string   `json:"image,omitempty"`
}

func (m *MenuItem) Validate() error {
	switch {
	case strings.TrimSpace(m.ID) == "":
		return errors.New("menu item: missing id")
	case m.Price < 0:
		return errors.New("menu item " + m.ID + ": negative price")
	}
	return nil
}

// CartProduct is the menu item as the cart stores it.
func (m MenuItem) CartProduct() cart.Product {
	p := cart.Product{
		ID:       m.ID,
		Name:     m.Name,
		Price:    m.Price,
		OldPrice: m.OldPrice,
	}
	if m.ImageURL != "" {
		p.Images = []string{m.ImageURL}
	}
	return p
}

type Menu struct {
	Restaurant Restaurant `json:"restaurant"`
	Items      []MenuItem `json:"items"`
}

// Find returns the item with id.
func (m *Menu) Find(id string) (MenuItem, bool) {
	for _, it := range m.Items {
		if it.ID == id {
			return it, true
		}
	}
	return MenuItem{}, false
}

// OrderRequest is the food order body.
type OrderRequest struct {
	RestaurantID  string       `json:"restaurantId"`
	Address       string       `json:"address"`
	ContactNumber string       `json:"contactNumber"`
	PaymentMethod string       `json:"paymentMethod"`
	Notes         string       `json:"notes,omitempty"`
	Items         []order.Item `json:"items"`
	Subtotal      float64      `json:"subtotal"`
	Discount      float64      `json:"discount"`
	DeliveryFee   float64      `json:"deliveryFee"`
	Total         float64      `json:"total"`
}

type Order struct {
	ID               string       `json:"id"`
	RestaurantID     string       `json:"restaurantId"`
	Status           order.Status `json:"status"`
	Total            float64      `json:"total"`
	EstimatedMinutes int          `json:"estimatedTime,omitempty"`
	CreatedAt        time.Time    `json:"createdAt"`
}

func (o *Order) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return errors.New("food order: missing id")
	}
	return nil
}

// Checkout is what the food checkout form collects.
type Checkout struct {
	Address       string
	ContactNumber string
	PaymentMethod string
	Notes         string
}
