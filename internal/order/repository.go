package order

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"localmart/internal/api"
)

type Repository interface {
	Place(ctx context.Context, req PlaceRequest) (*Order, error)
	ListMine(ctx context.Context, q ListQuery) (*List, error)
	Get(ctx context.Context, id string) (*Order, error)
	Cancel(ctx context.Context, id string) (*Order, error)

	// Back-office endpoints.
	ListAll(ctx context.Context, q ListQuery) (*List, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	client *api.Client
}

func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

type orderResponse struct {
	Data *Order `json:"data"`
}

func (r *orderResponse) Validate() error {
	if r.Data == nil {
		return errors.New("missing data")
	}
	return r.Data.Validate()
}

type listResponse struct {
	Data  []Order `json:"data"`
	Total *int    `json:"total"`
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

func (r *listResponse) list() *List {
	l := &List{Items: r.Data, Total: len(r.Data)}
	if r.Total != nil {
		l.Total = *r.Total
	}
	return l
}

func (r *repository) Place(ctx context.Context, req PlaceRequest) (*Order, error) {
	var resp orderResponse
	if err := r.client.Post(ctx, "/orders", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (r *repository) ListMine(ctx context.Context, q ListQuery) (*List, error) {
	return r.list(ctx, "/orders/me", q)
}

func (r *repository) ListAll(ctx context.Context, q ListQuery) (*List, error) {
	return r.list(ctx, "/admin/orders", q)
}

func (r *repository) list(ctx context.Context, path string, q ListQuery) (*List, error) {
	query := api.PageQuery(q.Page, q.Limit, q.Search)
	if q.Status != "" {
		query.Set("status", string(q.Status))
	}

	var resp listResponse
	if err := r.client.Get(ctx, path, query, &resp); err != nil {
		return nil, err
	}
	return resp.list(), nil
}

func (r *repository) Get(ctx context.Context, id string) (*Order, error) {
	var resp orderResponse
	err := r.client.Get(ctx, "/orders/"+url.PathEscape(id), nil, &resp)
	return r.single(resp, id, err)
}

func (r *repository) Cancel(ctx context.Context, id string) (*Order, error) {
	var resp orderResponse
	err := r.client.Post(ctx, "/orders/"+url.PathEscape(id)+"/cancel", nil, &resp)
	return r.single(resp, id, err)
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	var resp orderResponse
	body := map[string]Status{"status": status}
	err := r.client.Patch(ctx, "/admin/orders/"+url.PathEscape(id)+"/status", body, &resp)
	return r.single(resp, id, err)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	err := r.client.Delete(ctx, "/admin/orders/"+url.PathEscape(id))
	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	return err
}

func (r *repository) single(resp orderResponse, id string, err error) (*Order, error) {
	if errors.Is(err, api.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
