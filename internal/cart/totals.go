package cart

import "github.com/shopspring/decimal"

// DeliveryPolicy waives Fee once the subtotal is strictly above FreeAbove.
type DeliveryPolicy struct {
	Name      string
	FreeAbove decimal.Decimal
	Fee       decimal.Decimal
}

var (
	StandardDelivery = DeliveryPolicy{
		Name:      "standard",
		FreeAbove: decimal.NewFromInt(500),
		Fee:       decimal.NewFromInt(40),
	}
	ExpressDelivery = DeliveryPolicy{
		Name:      "express",
		FreeAbove: decimal.NewFromInt(500),
		Fee:       decimal.NewFromInt(60),
	}
)

// PolicyFor maps a checkout speed name to its policy, defaulting to standard.
func PolicyFor(name string) DeliveryPolicy {
	if name == ExpressDelivery.Name {
		return ExpressDelivery
	}
	return StandardDelivery
}

type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
}

// ComputeTotals derives the cart totals:
//
//	subtotal = Σ price × qty
//	discount = Σ max(0, oldPrice − price) × qty
//	total    = subtotal − discount + deliveryFee
//
// An empty cart has all-zero totals, delivery fee included.
func ComputeTotals(s Snapshot, policy DeliveryPolicy) Totals {
	t := Totals{
		Subtotal:    decimal.Zero,
		Discount:    decimal.Zero,
		DeliveryFee: decimal.Zero,
		Total:       decimal.Zero,
	}
	if len(s) == 0 {
		return t
	}

	for _, li := range s {
		qty := decimal.NewFromInt(int64(li.Quantity))
		price := decimal.NewFromFloat(li.Price)
		t.Subtotal = t.Subtotal.Add(price.Mul(qty))

		if li.OldPrice != nil {
			if diff := decimal.NewFromFloat(*li.OldPrice).Sub(price); diff.IsPositive() {
				t.Discount = t.Discount.Add(diff.Mul(qty))
			}
		}
	}

	if !t.Subtotal.GreaterThan(policy.FreeAbove) {
		t.DeliveryFee = policy.Fee
	}
	t.Total = t.Subtotal.Sub(t.Discount).Add(t.DeliveryFee)
	return t
}

// AmountToFreeDelivery is how much more the shopper must add before the fee
// is waived; zero once it already is.
func AmountToFreeDelivery(t Totals, policy DeliveryPolicy) decimal.Decimal {
	if t.Subtotal.GreaterThan(policy.FreeAbove) {
		return decimal.Zero
	}
	// "> FreeAbove" means one more paisa is needed past the threshold.
	return policy.FreeAbove.Sub(t.Subtotal).Add(decimal.New(1, -2))
}
