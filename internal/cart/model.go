package cart

import (
	"math"
	"strings"
)

// Product is what a catalog page hands to the cart.
type Product struct {
	ID       string
	Name     string
	Unit     string
	Price    float64
	OldPrice *float64
	Images   []string
}

func (p Product) validate() error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return ErrInvalidProduct
	case !validPrice(p.Price):
		return ErrInvalidProduct
	case p.OldPrice != nil && !validPrice(*p.OldPrice):
		return ErrInvalidProduct
	}
	return nil
}

// validPrice rejects negative and non-finite amounts; neither can be stored
// as JSON or totalled.
func validPrice(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// LineItem is one product in the cart. Quantity is always at least 1.
type LineItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Unit     string   `json:"unit,omitempty"`
	Price    float64  `json:"price"`
	OldPrice *float64 `json:"oldPrice,omitempty"`
	Quantity int      `json:"quantity"`
	Images   []string `json:"images,omitempty"`
}

// Image returns the canonical image, if any.
func (li LineItem) Image() string {
	if len(li.Images) == 0 {
		return ""
	}
	return li.Images[0]
}

// Snapshot is the ordered list of line items, in insertion order.
type Snapshot []LineItem

func (s Snapshot) index(id string) int {
	for i := range s {
		if s[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the line item with id.
func (s Snapshot) Find(id string) (LineItem, bool) {
	if i := s.index(id); i >= 0 {
		return s[i], true
	}
	return LineItem{}, false
}

// Count is the number of units across all line items.
func (s Snapshot) Count() int {
	n := 0
	for _, li := range s {
		n += li.Quantity
	}
	return n
}

func (s Snapshot) clone() Snapshot {
	out := make(Snapshot, len(s))
	for i, li := range s {
		if li.OldPrice != nil {
			op := *li.OldPrice
			li.OldPrice = &op
		}
		li.Images = append([]string(nil), li.Images...)
		out[i] = li
	}
	return out
}

// sanitize enforces the cart invariants on data read back from storage,
// which may have been written by an older client or edited by hand.
func sanitize(in Snapshot) Snapshot {
	out := make(Snapshot, 0, len(in))
	for _, li := range in {
		if strings.TrimSpace(li.ID) == "" || li.Quantity < 1 || !validPrice(li.Price) {
			continue
		}
		if li.OldPrice != nil && !validPrice(*li.OldPrice) {
			li.OldPrice = nil
		}
		if i := out.index(li.ID); i >= 0 {
			out[i].Quantity += li.Quantity
			continue
		}
		out = append(out, li)
	}
	return out
}
