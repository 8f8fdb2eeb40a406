package food

import (
	"context"
	"strings"

	"localmart/internal/api"
	"localmart/internal/logger"
	"localmart/internal/order"
	"localmart/internal/payment"
	"localmart/internal/validators"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Restaurants(ctx context.Context, search string) ([]Restaurant, error)
	Menu(ctx context.Context, restaurantID string) (*Menu, error)
	AddToCart(ctx context.Context, restaurantID, itemID string) error
	PlaceOrder(ctx context.Context, form Checkout) (*Order, error)
}

type service struct {
	repo Repository
	cart *Cart
}

func NewService(repo Repository, c *Cart) Service {
	return &service{repo: repo, cart: c}
}

func (s *service) Restaurants(ctx context.Context, search string) ([]Restaurant, error) {
	return s.repo.ListRestaurants(ctx, strings.TrimSpace(search))
}

func (s *service) Menu(ctx context.Context, restaurantID string) (*Menu, error) {
	return s.repo.GetMenu(ctx, restaurantID)
}

// AddToCart looks the item up on the restaurant's current menu so a closed
// restaurant or a sold-out dish never reaches the cart.
func (s *service) AddToCart(ctx context.Context, restaurantID, itemID string) error {
	menu, err := s.repo.GetMenu(ctx, restaurantID)
	if err != nil {
		return err
	}
	if !menu.Restaurant.IsOpen {
		return ErrRestaurantClosed
	}
	item, ok := menu.Find(itemID)
	if !ok {
		return ErrItemUnavailable
	}
	return s.cart.Add(ctx, restaurantID, item)
}

func (s *service) PlaceOrder(ctx context.Context, form Checkout) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceFoodOrder"),
	)

	form.Address = strings.TrimSpace(form.Address)
	form.ContactNumber = strings.TrimSpace(form.ContactNumber)
	form.Notes = strings.TrimSpace(form.Notes)
	if err := validateCheckout(form); err != nil {
		return nil, err
	}
	method, _ := payment.ParseMethod(form.PaymentMethod)

	snap := s.cart.Snapshot(ctx)
	if len(snap) == 0 {
		return nil, ErrEmptyCart
	}
	restaurantID := s.cart.Restaurant(ctx)
	if restaurantID == "" {
		return nil, ErrUnpinnedCart
	}
	totals := s.cart.Totals(ctx)

	items := make([]order.Item, 0, len(snap))
	for _, li := range snap {
		items = append(items, order.Item{ProductID: li.ID, Name: li.Name, Price: li.Price, Quantity: li.Quantity})
	}

	req := OrderRequest{
		RestaurantID:  restaurantID,
		Address:       form.Address,
		ContactNumber: form.ContactNumber,
		PaymentMethod: string(method),
		Notes:         form.Notes,
		Items:         items,
		Subtotal:      totals.Subtotal.InexactFloat64(),
		Discount:      totals.Discount.InexactFloat64(),
		DeliveryFee:   totals.DeliveryFee.InexactFloat64(),
		Total:         totals.Total.InexactFloat64(),
	}

	ctx = api.WithIdempotencyKey(ctx, uuid.NewString())
	o, err := s.repo.PlaceOrder(ctx, req)
	if err != nil {
		log.Error("food order failed", zap.Error(err))
		return nil, err
	}

	if err := s.cart.Clear(ctx); err != nil {
		log.Warn("food cart not cleared", zap.Error(err))
	}

	log.Info("food order placed",
		zap.String("order_id", o.ID),
		zap.String("restaurant_id", restaurantID),
	)
	return o, nil
}

func validateCheckout(f Checkout) error {
	errs := validators.FieldErrors{}
	if !validators.Required(f.Address) {
		errs.Add("address", "delivery address is required")
	}
	if err := validators.ValidatePhone(f.ContactNumber); err != nil {
		errs.Add("contactNumber", err.Error())
	}
	if _, err := payment.ParseMethod(f.PaymentMethod); err != nil {
		errs.Add("paymentMethod", "choose a payment method")
	}
	return errs.Err()
}
