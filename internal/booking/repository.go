package booking

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"localmart/internal/api"
)

type Repository interface {
	// Create returns an error matching api.ErrConflict when the server sees
	// an identical service and date already booked.
	Create(ctx context.Context, req Request) (*Booking, error)
	ListMine(ctx context.Context, q ListQuery) (*List, error)
	Cancel(ctx context.Context, id string) (*Booking, error)
}

type repository struct {
	client *api.Client
}

func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

type bookingResponse struct {
	Data *Booking `json:"data"`
}

func (r *bookingResponse) Validate() error {
	if r.Data == nil {
		return errors.New("missing data")
	}
	return r.Data.Validate()
}

type listResponse struct {
	Data  []Booking `json:"data"`
	Total *int      `json:"total"`
}

func (r *listResponse) Validate() error {
	if r.Data == nil {
		return errors.New("missing data")
	}
	for i := range r.Data {
		if err := r.Data[i].Validate(); err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
	}
	return nil
}

func (r *repository) Create(ctx context.Context, req Request) (*Booking, error) {
	var resp bookingResponse
	if err := r.client.Post(ctx, "/bookings", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (r *repository) ListMine(ctx context.Context, q ListQuery) (*List, error) {
	var resp listResponse
	if err := r.client.Get(ctx, "/bookings/me", api.PageQuery(q.Page, q.Limit, ""), &resp); err != nil {
		return nil, err
	}

	l := &List{Items: resp.Data, Total: len(resp.Data)}
	if resp.Total != nil {
		l.Total = *resp.Total
	}
	return l, nil
}

func (r *repository) Cancel(ctx context.Context, id string) (*Booking, error) {
	var resp bookingResponse
	err := r.client.Post(ctx, "/bookings/"+url.PathEscape(id)+"/cancel", nil, &resp)
	if errors.Is(err, api.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
