package cart_test

import (
	"context"
	"fmt"
	"testing"

	"localmart/internal/cart"
	"localmart/internal/storage"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

type cartTestContext struct {
	mem   *storage.Memory
	store *cart.Store
}

func (c *cartTestContext) reset() {
	c.mem = storage.NewMemory()
	c.store = cart.NewStore(c.mem)
}

func (c *cartTestContext) anEmptyCart() error {
	c.reset()
	return nil
}

func (c *cartTestContext) theStoredCartIs(raw string) error {
	return c.mem.Set(context.Background(), storage.KeyCart, []byte(raw))
}

func (c *cartTestContext) iOpenTheCart() error {
	c.store = cart.NewStore(c.mem)
	return nil
}

func (c *cartTestContext) iAddProductPriced(id string, price float64) error {
	return c.store.AddItem(context.Background(), cart.Product{ID: id, Name: id, Price: price})
}

func (c *cartTestContext) iAddProductPricedWithOldPrice(id string, price, old float64) error {
	return c.store.AddItem(context.Background(), cart.Product{ID: id, Name: id, Price: price, OldPrice: &old})
}

func (c *cartTestContext) iSetTheQuantityOf(id string, qty int) error {
	return c.store.UpdateQuantity(context.Background(), id, qty)
}

func (c *cartTestContext) theCartHasLines(n int) error {
	if got := len(c.store.Snapshot(context.Background())); got != n {
		return fmt.Errorf("expected %d lines, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) lineHasQuantity(id string, qty int) error {
	li, ok := c.store.Snapshot(context.Background()).Find(id)
	if !ok {
		return fmt.Errorf("line %q not in cart", id)
	}
	if li.Quantity != qty {
		return fmt.Errorf("expected quantity %d, got %d", qty, li.Quantity)
	}
	return nil
}

func (c *cartTestContext) theTotalsAre(subtotal, discount, delivery, total float64) error {
	got := c.store.Totals(context.Background())
	checks := []struct {
		name string
		want float64
		got  decimal.Decimal
	}{
		{"subtotal", subtotal, got.Subtotal},
		{"discount", discount, got.Discount},
		{"delivery", delivery, got.DeliveryFee},
		{"total", total, got.Total},
	}
	for _, chk := range checks {
		if !decimal.NewFromFloat(chk.want).Equal(chk.got) {
			return fmt.Errorf("expected %s %v, got %s", chk.name, chk.want, chk.got)
		}
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^the stored cart is "([^"]*)"$`, tc.theStoredCartIs)

	// When steps
	ctx.Step(`^I open the cart$`, tc.iOpenTheCart)
	ctx.Step(`^I add product "([^"]*)" priced (\d+(?:\.\d+)?)$`, tc.iAddProductPriced)
	ctx.Step(`^I add product "([^"]*)" priced (\d+(?:\.\d+)?) with old price (\d+(?:\.\d+)?)$`, tc.iAddProductPricedWithOldPrice)
	ctx.Step(`^I set the quantity of "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantityOf)

	// Then steps
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^line "([^"]*)" has quantity (\d+)$`, tc.lineHasQuantity)
	ctx.Step(`^the totals are subtotal (\d+(?:\.\d+)?), discount (\d+(?:\.\d+)?), delivery (\d+(?:\.\d+)?), total (\d+(?:\.\d+)?)$`, tc.theTotalsAre)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
