package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"localmart/internal/api"
)

type Repository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListProducts(ctx context.Context, q Query) (*ProductList, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
}

type repository struct {
	client *api.Client
}

func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

type categoryListResponse struct {
	Data []Category `json:"data"`
}

func (r *categoryListResponse) Validate() error {
	for i, c := range r.Data {
		if c.ID == "" || c.Name == "" {
			return fmt.Errorf("category at index %d: missing id or name", i)
		}
	}
	return nil
}

type productListResponse struct {
	Data  []Product `json:"data"`
	Total *int      `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

func (r *productListResponse) Validate() error {
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

type productResponse struct {
	Data *Product `json:"data"`
}

func (r *productResponse) Validate() error {
	if r.Data == nil {
		return errors.New("missing data")
	}
	return r.Data.Validate()
}

func (r *repository) ListCategories(ctx context.Context) ([]Category, error) {
	var resp categoryListResponse
	if err := r.client.Get(ctx, "/categories", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []Category{}, nil
	}
	return resp.Data, nil
}

func (r *repository) ListProducts(ctx context.Context, q Query) (*ProductList, error) {
	query := api.PageQuery(q.Page, q.Limit, q.Search)
	if q.CategoryID != "" {
		query.Set("category", q.CategoryID)
	}

	var resp productListResponse
	if err := r.client.Get(ctx, "/products", query, &resp); err != nil {
		return nil, err
	}

	list := &ProductList{
		Items: resp.Data,
		Total: len(resp.Data),
		Page:  q.Page,
		Limit: q.Limit,
	}
	if resp.Total != nil {
		list.Total = *resp.Total
	}
	if resp.Page > 0 {
		list.Page = resp.Page
	}
	if resp.Limit > 0 {
		list.Limit = resp.Limit
	}
	return list, nil
}

func (r *repository) GetProduct(ctx context.Context, id string) (*Product, error) {
	var resp productResponse
	err := r.client.Get(ctx, "/products/"+url.PathEscape(id), nil, &resp)
	if errors.Is(err, api.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
