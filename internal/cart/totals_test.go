package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func money(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func assertMoney(t *testing.T, want float64, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, money(want).Equal(got), "%s: want %v, got %s", field, want, got)
}

func TestComputeTotals(t *testing.T) {
	old150 := 150.0
	old80 := 80.0

	cases := []struct {
		name     string
		items    Snapshot
		policy   DeliveryPolicy
		subtotal float64
		discount float64
		fee      float64
		total    float64
	}{
		{
			name:   "Empty cart is all zero",
			items:  Snapshot{},
			policy: StandardDelivery,
		},
		{
			name:     "Single item pays delivery",
			items:    Snapshot{{ID: "p1", Price: 100, Quantity: 1}},
			policy:   StandardDelivery,
			subtotal: 100, fee: 40, total: 140,
		},
		{
			name:     "Discounted items above threshold ship free",
			items:    Snapshot{{ID: "p1", Price: 100, OldPrice: &old150, Quantity: 6}},
			policy:   StandardDelivery,
			subtotal: 600, discount: 300, total: 300,
		},
		{
			name:     "Exactly at threshold still pays",
			items:    Snapshot{{ID: "p1", Price: 250, Quantity: 2}},
			policy:   StandardDelivery,
			subtotal: 500, fee: 40, total: 540,
		},
		{
			name:     "One paisa above threshold ships free",
			items:    Snapshot{{ID: "p1", Price: 500.01, Quantity: 1}},
			policy:   StandardDelivery,
			subtotal: 500.01, total: 500.01,
		},
		{
			name:     "Old price below price gives no discount",
			items:    Snapshot{{ID: "p1", Price: 100, OldPrice: &old80, Quantity: 2}},
			policy:   StandardDelivery,
			subtotal: 200, fee: 40, total: 240,
		},
		{
			name:     "Express fee",
			items:    Snapshot{{ID: "p1", Price: 10.5, Quantity: 3}},
			policy:   ExpressDelivery,
			subtotal: 31.5, fee: 60, total: 91.5,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTotals(tc.items, tc.policy)

			assertMoney(t, tc.subtotal, got.Subtotal, "subtotal")
			assertMoney(t, tc.discount, got.Discount, "discount")
			assertMoney(t, tc.fee, got.DeliveryFee, "deliveryFee")
			assertMoney(t, tc.total, got.Total, "total")

			identity := got.Subtotal.Sub(got.Discount).Add(got.DeliveryFee)
			assert.True(t, identity.Equal(got.Total))

			again := ComputeTotals(tc.items, tc.policy)
			assert.True(t, again.Total.Equal(got.Total))
			assert.True(t, again.Subtotal.Equal(got.Subtotal))
		})
	}
}

func TestComputeTotals_FloatPrices(t *testing.T) {
	items := Snapshot{
		{ID: "a", Price: 0.1, Quantity: 1},
		{ID: "b", Price: 0.2, Quantity: 1},
	}
	got := ComputeTotals(items, StandardDelivery)
	assertMoney(t, 0.3, got.Subtotal, "subtotal")
}

func TestAmountToFreeDelivery(t *testing.T) {
	under := ComputeTotals(Snapshot{{ID: "p", Price: 450, Quantity: 1}}, StandardDelivery)
	assertMoney(t, 50.01, AmountToFreeDelivery(under, StandardDelivery), "remaining")

	over := ComputeTotals(Snapshot{{ID: "p", Price: 600, Quantity: 1}}, StandardDelivery)
	assert.True(t, AmountToFreeDelivery(over, StandardDelivery).IsZero())
}

func TestPolicyFor(t *testing.T) {
	assert.Equal(t, ExpressDelivery, PolicyFor("express"))
	assert.Equal(t, StandardDelivery, PolicyFor("standard"))
	assert.Equal(t, StandardDelivery, PolicyFor(""))
}
