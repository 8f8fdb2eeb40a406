package catalog

import (
	"fmt"
	"strings"

	"localmart/internal/cart"
)

type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug,omitempty"`
	ImageURL string `json:"image,omitempty"`
}

type Product struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	CategoryID string   `json:"categoryId,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	Price      float64  `json:"price"`
	OldPrice   *float64 `json:"oldPrice,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	Popularity *int     `json:"popularity,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Images     []string `json:"images,omitempty"`
	InStock    bool     `json:"inStock"`
}

// DiscountPercent is (oldPrice - price) / oldPrice as a percentage, or 0 when
// there is no higher old price.
func (p Product) DiscountPercent() float64 {
	if p.OldPrice == nil || *p.OldPrice <= 0 || *p.OldPrice <= p.Price {
		return 0
	}
	return (*p.OldPrice - p.Price) / *p.OldPrice * 100
}

func (p Product) rating() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

func (p Product) popularity() int {
	if p.Popularity == nil {
		return 0
	}
	return *p.Popularity
}

// HasTag matches case-insensitively.
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(strings.TrimSpace(t), strings.TrimSpace(tag)) {
			return true
		}
	}
	return false
}

// CartProduct converts the listing into what the cart stores.
func (p Product) CartProduct() cart.Product {
	return cart.Product{
		ID:       p.ID,
		Name:     p.Name,
		Unit:     p.Unit,
		Price:    p.Price,
		OldPrice: p.OldPrice,
		Images:   p.Images,
	}
}

func (p *Product) Validate() error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("product: missing id")
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("product %s: missing name", p.ID)
	case p.Price < 0:
		return fmt.Errorf("product %s: negative price", p.ID)
	}
	return nil
}

// Query describes one catalog listing. CategoryID and Search go to the
// server; Tags and Sort are applied to the fetched page locally.
type Query struct {
	CategoryID string
	Search     string
	Tags       []string
	Sort       SortKey
	Page       int
	Limit      int
}

type ProductList struct {
	Items []Product
	Total int
	Page  int
	Limit int
}
