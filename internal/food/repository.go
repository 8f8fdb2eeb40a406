package food

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"localmart/internal/api"
)

type Repository interface {
	ListRestaurants(ctx context.Context, search string) ([]Restaurant, error)
	GetMenu(ctx context.Context, restaurantID string) (*Menu, error)
	PlaceOrder(ctx context.Context, req OrderRequest) (*Order, error)
}

type repository struct {
	client *api.Client
}

func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

type restaurantsResponse struct {
	Data []Restaurant `json:"data"`
}

func (r *restaurantsResponse) Validate() error {
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

type menuResponse struct {
	Data *Menu `json:"data"`
}

func (r *menuResponse) Validate() error {
	if r.Data == nil {
		return errors.New("missing data")
	}
	if err := r.Data.Restaurant.Validate(); err != nil {
		return err
	}
	for i := range r.Data.Items {
		if err := r.Data.Items[i].Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
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

func (r *repository) ListRestaurants(ctx context.Context, search string) ([]Restaurant, error) {
	var resp restaurantsResponse
	if err := r.client.Get(ctx, "/food/restaurants", api.PageQuery(0, 0, search), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (r *repository) GetMenu(ctx context.Context, restaurantID string) (*Menu, error) {
	var resp menuResponse
	err := r.client.Get(ctx, "/food/restaurants/"+url.PathEscape(restaurantID)+"/menu", nil, &resp)
	if errors.Is(err, api.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRestaurantNotFound, restaurantID)
	}
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (r *repository) PlaceOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	var resp orderResponse
	if err := r.client.Post(ctx, "/food/orders", req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
