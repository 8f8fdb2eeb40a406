package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"localmart/internal/logger"
	"localmart/internal/storage"

	"go.uber.org/zap"
)

// Store is the single source of truth for an in-progress cart. Pages share
// one Store; every mutation is written through to durable storage before it
// returns.
type Store struct {
	mu      sync.Mutex
	storage storage.Store
	key     string
	policy  DeliveryPolicy

	items  Snapshot
	loaded bool

	subs    map[int]func(Snapshot)
	nextSub int
}

type Option func(*Store)

// WithKey stores the cart under a different storage key (e.g. food_cart).
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithPolicy(p DeliveryPolicy) Option {
	return func(s *Store) { s.policy = p }
}

func NewStore(st storage.Store, opts ...Option) *Store {
	s := &Store{
		storage: st,
		key:     storage.KeyCart,
		policy:  StandardDelivery,
		subs:    make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current cart, reading storage on first use.
func (s *Store) Snapshot(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoaded(ctx)
	return s.items.clone()
}

// Reload discards the in-memory copy and re-reads storage, for when another
// page or device may have written the cart.
func (s *Store) Reload(ctx context.Context) Snapshot {
	s.mu.Lock()
	s.loaded = false
	s.ensureLoaded(ctx)
	snap := s.items.clone()
	s.mu.Unlock()

	s.publish(snap)
	return snap
}

// Totals computes totals for the current cart under the store's policy.
func (s *Store) Totals(ctx context.Context) Totals {
	return ComputeTotals(s.Snapshot(ctx), s.policy)
}

// AddItem increments the quantity of an existing line or appends a new one
// with quantity 1.
func (s *Store) AddItem(ctx context.Context, p Product) error {
	if err := p.validate(); err != nil {
		return fmt.Errorf("%w: id=%q price=%v", err, p.ID, p.Price)
	}

	return s.mutate(ctx, "AddItem", func(items Snapshot) Snapshot {
		if i := items.index(p.ID); i >= 0 {
			items[i].Quantity++
			return items
		}
		return append(items, LineItem{
			ID:       p.ID,
			Name:     p.Name,
			Unit:     p.Unit,
			Price:    p.Price,
			OldPrice: p.OldPrice,
			Quantity: 1,
			Images:   append([]string(nil), p.Images...),
		})
	})
}

// UpdateQuantity sets the quantity of id. Anything below 1 removes the line.
// Unknown ids are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if quantity < 1 {
		return s.RemoveItem(ctx, id)
	}

	return s.mutate(ctx, "UpdateQuantity", func(items Snapshot) Snapshot {
		if i := items.index(id); i >= 0 {
			items[i].Quantity = quantity
		}
		return items
	})
}

// RemoveItem drops the line for id; unknown ids are a no-op.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	return s.mutate(ctx, "RemoveItem", func(items Snapshot) Snapshot {
		if i := items.index(id); i >= 0 {
			return append(items[:i], items[i+1:]...)
		}
		return items
	})
}

// Clear empties the cart; called once an order is confirmed.
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, "Clear", func(Snapshot) Snapshot {
		return Snapshot{}
	})
}

// Subscribe registers fn to receive the cart after every change. The returned
// func unsubscribes.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Watch reloads the cart whenever the underlying storage reports that another
// client wrote it. Writes are last-write-wins on the whole snapshot. Watch
// returns once watching has started; it stops when ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	w, ok := s.storage.(storage.Watcher)
	if !ok {
		return errors.New("storage backend does not support change notifications")
	}

	changes, err := w.Watch(ctx, s.key)
	if err != nil {
		return err
	}

	go func() {
		for range changes {
			s.Reload(ctx)
		}
	}()
	return nil
}

// mutate applies fn to the current items, persists and notifies. On a write
// failure the in-memory change is kept and ErrNotPersisted is returned.
func (s *Store) mutate(ctx context.Context, method string, fn func(Snapshot) Snapshot) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "cart"),
		zap.String("method", method),
		zap.String("key", s.key),
	)

	s.mu.Lock()
	s.ensureLoaded(ctx)
	s.items = fn(s.items.clone())
	snap := s.items.clone()
	err := s.persist(ctx, snap)
	s.mu.Unlock()

	s.publish(snap)

	if err != nil {
		log.Warn("cart change kept in memory only", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}

	log.Debug("cart updated",
		zap.Int("lines", len(snap)),
		zap.Int("units", snap.Count()),
	)
	return nil
}

func (s *Store) persist(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, s.key, data)
}

// ensureLoaded must be called with mu held. Any read or decode failure is
// treated as an empty cart.
func (s *Store) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true
	s.items = Snapshot{}

	data, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "cart"),
		zap.String("key", s.key),
	)
	if err != nil {
		log.Warn("cart read failed, starting empty", zap.Error(err))
		return
	}

	var stored Snapshot
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Warn("stored cart is malformed, starting empty", zap.Error(err))
		return
	}
	s.items = sanitize(stored)
}

func (s *Store) publish(snap Snapshot) {
	s.mu.Lock()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap.clone())
	}
}
