package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"localmart/internal/api"
	"localmart/internal/cart"
	"localmart/internal/logger"
	"localmart/internal/order"
	"localmart/internal/payment"
	"localmart/internal/utils"
	"localmart/internal/validators"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
)

// CartSource is the part of the cart store checkout reads and clears.
type CartSource interface {
	Snapshot(ctx context.Context) cart.Snapshot
	Clear(ctx context.Context) error
}

type OrderPlacer interface {
	Place(ctx context.Context, req order.PlaceRequest) (*order.Order, error)
}

type Confirmation struct {
	OrderID       string
	Totals        cart.Totals
	PaymentMethod payment.Method
	Instructions  []string
	Units         int
}

// View is what the checkout page renders. Errors holds inline field errors,
// Banner a page-level message from the last failed submission.
type View struct {
	State        State
	Errors       validators.FieldErrors
	Banner       string
	Warning      string
	Confirmation *Confirmation
}

type Option func(*Session)

// WithRedirect calls fn with the confirmation delay after a successful order,
// once the success animation has had time to play.
func WithRedirect(delay time.Duration, fn func(Confirmation)) Option {
	return func(s *Session) {
		s.delay = delay
		s.onRedirect = fn
	}
}

// Session runs one checkout: Editing -> Submitting -> Success, or back to
// Editing with a banner when the order is rejected.
type Session struct {
	cart   CartSource
	orders OrderPlacer

	delay      time.Duration
	onRedirect func(Confirmation)

	mu    sync.Mutex
	view  View
	timer *time.Timer
}

func NewSession(c CartSource, orders OrderPlacer, opts ...Option) *Session {
	s := &Session{
		cart:   c,
		orders: orders,
		delay:  2 * time.Second,
		view:   View{State: StateEditing},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Submit validates f, places the order and clears the cart. Validation
// failures come back as validators.FieldErrors and never reach the network.
func (s *Session) Submit(ctx context.Context, f Form) (*Confirmation, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "checkout"),
		zap.String("method", "Submit"),
	)

	s.mu.Lock()
	switch s.view.State {
	case StateSubmitting:
		s.mu.Unlock()
		return nil, ErrAlreadySubmitting
	case StateSuccess:
		s.mu.Unlock()
		return nil, ErrAlreadyPlaced
	}

	if err := f.Validate(); err != nil {
		var fe validators.FieldErrors
		errors.As(err, &fe)
		s.view = View{State: StateEditing, Errors: fe}
		s.mu.Unlock()
		return nil, err
	}

	snap := s.cart.Snapshot(ctx)
	if len(snap) == 0 {
		s.view = View{State: StateEditing, Banner: "Your cart is empty."}
		s.mu.Unlock()
		return nil, ErrEmptyCart
	}

	s.view = View{State: StateSubmitting}
	s.mu.Unlock()

	req, totals := BuildPayload(f, snap)
	key := uuid.NewString()
	ctx = api.WithIdempotencyKey(ctx, key)

	log.Info("submitting order",
		zap.String("idempotency_key", key),
		zap.Int("lines", len(req.Items)),
		zap.String("total", totals.Total.String()),
	)

	placed, err := s.orders.Place(ctx, req)
	if err != nil {
		log.Warn("order rejected", zap.Error(err))
		s.mu.Lock()
		s.view = View{State: StateEditing, Banner: api.Message(err)}
		s.mu.Unlock()
		return nil, err
	}

	method := payment.Method(req.PaymentMethod)
	conf := Confirmation{
		OrderID:       placed.ID,
		Totals:        totals,
		PaymentMethod: method,
		Units:         snap.Count(),
		Instructions: payment.Instructions(method, payment.InstructionVars{
			"amount":   utils.Rupees(totals.Total),
			"address":  req.Address,
			"order_id": placed.ID,
		}),
	}

	var warning string
	if err := s.cart.Clear(ctx); err != nil {
		// The order exists; a cart that failed to clear must not undo that.
		log.Warn("cart not cleared after order", zap.Error(err))
		warning = "Your order was placed but the cart could not be cleared on this device."
	}

	s.mu.Lock()
	s.view = View{State: StateSuccess, Confirmation: &conf, Warning: warning}
	if s.onRedirect != nil {
		s.timer = time.AfterFunc(s.delay, func() { s.onRedirect(conf) })
	}
	s.mu.Unlock()

	log.Info("order placed", zap.String("order_id", placed.ID))
	return &conf, nil
}

// Close cancels a pending redirect.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
}

