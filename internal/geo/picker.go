package geo

import (
	"context"
	"errors"
	"sync"

	"localmart/internal/logger"
	"localmart/internal/utils"

	"go.uber.org/zap"
)

type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// PickerView is what the map widget shows. Message is an inline notice that
// never blocks the rest of the form.
type PickerView struct {
	State   State
	Place   *Place
	Message string
}

// Picker lets the user pin a location by search or by dragging the marker,
// then hands the confirmed place to onConfirm.
type Picker struct {
	maps      Maps
	onConfirm func(address string, lat, lng float64) error

	// seq drops lookups overtaken by a newer search or drag.
	seq utils.Sequence

	mu   sync.Mutex
	view PickerView
}

func NewPicker(maps Maps, onConfirm func(address string, lat, lng float64) error) *Picker {
	return &Picker{
		maps:      maps,
		onConfirm: onConfirm,
		view:      PickerView{State: StateLoading},
	}
}

// Start waits for the provider. It returns once the picker is Ready or
// Failed, or when ctx ends (the picker stays Loading).
func (p *Picker) Start(ctx context.Context) error {
	p.maps.Initialize(ctx)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.maps.Ready():
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.maps.Err(); err != nil {
		logger.FromCtx(ctx).Warn("map failed to load",
			zap.String("layer", "geo"),
			zap.Error(err),
		)
		p.view.State = StateFailed
		p.view.Message = "Map could not be loaded. You can still type your address."
		return err
	}
	p.view.State = StateReady
	return nil
}

func (p *Picker) View() PickerView {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := p.view
	if v.Place != nil {
		pl := *v.Place
		v.Place = &pl
	}
	return v
}

// Search moves the marker to the first match for query.
func (p *Picker) Search(ctx context.Context, query string) error {
	if err := p.requireReady(); err != nil {
		return err
	}
	token := p.seq.Begin()

	place, err := p.maps.Geocode(ctx, query)
	p.seq.Apply(token, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			p.view.Message = lookupMessage(err, "No place matches that search.")
			return
		}
		p.view.Place = &place
		p.view.Message = ""
	})
	return err
}

// Drag moves the marker to lat/lng straight away, then fills in the address.
// If the address lookup fails the coordinates are kept.
func (p *Picker) Drag(ctx context.Context, lat, lng float64) error {
	if err := p.requireReady(); err != nil {
		return err
	}
	token := p.seq.Begin()

	p.mu.Lock()
	p.view.Place = &Place{Lat: lat, Lng: lng}
	p.mu.Unlock()

	place, err := p.maps.ReverseGeocode(ctx, lat, lng)
	p.seq.Apply(token, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			p.view.Message = lookupMessage(err, "Could not find an address for this spot.")
			return
		}
		p.view.Place = &Place{Address: place.Address, Lat: lat, Lng: lng}
		p.view.Message = ""
	})
	return err
}

// Confirm hands the pinned place to the form.
func (p *Picker) Confirm() error {
	p.mu.Lock()
	place := p.view.Place
	p.mu.Unlock()

	if place == nil || place.Address == "" {
		return ErrNothingPicked
	}
	return p.onConfirm(place.Address, place.Lat, place.Lng)
}

// Close drops lookups still in flight.
func (p *Picker) Close() {
	p.seq.Close()
}

func (p *Picker) requireReady() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.view.State != StateReady {
		return ErrNotReady
	}
	return nil
}

func lookupMessage(err error, noResult string) string {
	if errors.Is(err, ErrNoResult) {
		return noResult
	}
	return "Map lookup failed. Try again."
}
