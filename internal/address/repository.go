package address

import (
	"context"
	"errors"
	"fmt"

	"localmart/internal/api"
	"localmart/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Address, error)
	Get(ctx context.Context, id uuid.UUID) (*Address, error)

	Create(ctx context.Context, in Input) (*Address, error)
	Update(ctx context.Context, id uuid.UUID, in Input) (*Address, error)
	Delete(ctx context.Context, id uuid.UUID) error

	SetDefault(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	client *api.Client
}

func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

type addressResponse struct {
	Data *Address `json:"data"`
}

func (r *addressResponse) Validate() error {
	if r.Data == nil {
		return errors.New("missing data")
	}
	return r.Data.Validate()
}

type listResponse struct {
	Data []*Address `json:"data"`
}

func (r *listResponse) Validate() error {
	if r.Data == nil {
		return errors.New("missing data")
	}
	for i, a := range r.Data {
		if a == nil {
			return fmt.Errorf("index %d: null address", i)
		}
		if err := a.Validate(); err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
	}
	return nil
}

func path(id uuid.UUID) string {
	return "/addresses/" + id.String()
}

func notFound(err error, id uuid.UUID) error {
	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrAddressNotFound, id)
	}
	return err
}

func (r *repository) List(ctx context.Context) ([]*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "List"),
	)

	var resp listResponse
	if err := r.client.Get(ctx, "/addresses", nil, &resp); err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	return resp.Data, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Address, error) {
	var resp addressResponse
	if err := r.client.Get(ctx, path(id), nil, &resp); err != nil {
		return nil, notFound(err, id)
	}
	return resp.Data, nil
}

func (r *repository) Create(ctx context.Context, in Input) (*Address, error) {
	var resp addressResponse
	if err := r.client.Post(ctx, "/addresses", in, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, in Input) (*Address, error) {
	var resp addressResponse
	if err := r.client.Put(ctx, path(id), in, &resp); err != nil {
		return nil, notFound(err, id)
	}
	return resp.Data, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return notFound(r.client.Delete(ctx, path(id)), id)
}

func (r *repository) SetDefault(ctx context.Context, id uuid.UUID) error {
	return notFound(r.client.Post(ctx, path(id)+"/default", nil, nil), id)
}
