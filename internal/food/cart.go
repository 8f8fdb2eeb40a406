package food

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"localmart/internal/cart"
	"localmart/internal/storage"
)

// Cart is the food cart: a cart store under its own key, pinned to the one
// restaurant its items come from.
type Cart struct {
	mu      sync.Mutex
	items   *cart.Store
	storage storage.Store
}

func NewCart(st storage.Store) *Cart {
	return &Cart{
		items:   cart.NewStore(st, cart.WithKey(storage.KeyFoodCart)),
		storage: st,
	}
}

// Restaurant is the restaurant the cart is pinned to, or "" when empty.
func (c *Cart) Restaurant(ctx context.Context) string {
	if len(c.items.Snapshot(ctx)) == 0 {
		return ""
	}
	data, err := c.storage.Get(ctx, storage.KeyFoodRestaurant)
	if err != nil {
		return ""
	}
	return string(data)
}

// Add puts one unit of item from restaurantID in the cart. Items from a
// second restaurant are refused until the cart is cleared.
func (c *Cart) Add(ctx context.Context, restaurantID string, item MenuItem) error {
	if !item.Available {
		return fmt.Errorf("%w: %s", ErrItemUnavailable, item.Name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.Restaurant(ctx)
	if current == "" && len(c.items.Snapshot(ctx)) > 0 {
		// The pin was lost; the items could be from anywhere.
		return ErrUnpinnedCart
	}
	if current != "" && current != restaurantID {
		return ErrMixedRestaurant
	}
	if current == "" {
		if err := c.storage.Set(ctx, storage.KeyFoodRestaurant, []byte(restaurantID)); err != nil {
			return fmt.Errorf("%w: %w", cart.ErrNotPersisted, err)
		}
	}
	return c.items.AddItem(ctx, item.CartProduct())
}

func (c *Cart) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	return c.items.UpdateQuantity(ctx, itemID, quantity)
}

func (c *Cart) Remove(ctx context.Context, itemID string) error {
	return c.items.RemoveItem(ctx, itemID)
}

func (c *Cart) Snapshot(ctx context.Context) cart.Snapshot {
	return c.items.Snapshot(ctx)
}

func (c *Cart) Totals(ctx context.Context) cart.Totals {
	return c.items.Totals(ctx)
}

// Clear empties the cart and unpins the restaurant.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.items.Clear(ctx)
	if derr := c.storage.Delete(ctx, storage.KeyFoodRestaurant); derr != nil && !errors.Is(derr, storage.ErrNotFound) {
		err = errors.Join(err, derr)
	}
	return err
}
