package user

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"localmart/internal/api"
	"localmart/internal/auth"
	"localmart/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetProfile(ctx context.Context) (*Profile, error)
	UpdateProfile(ctx context.Context, p UpdateProfileParams) (*Profile, error)

	// Admin endpoints.
	ListAll(ctx context.Context, q ListQuery) (*List, error)
	UpdateRole(ctx context.Context, id string, role auth.Role) (*Profile, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	client *api.Client
}

func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

type profileResponse struct {
	Data *Profile `json:"data"`
}

func (r *profileResponse) Validate() error {
	if r.Data == nil {
		return errors.New("missing data")
	}
	return r.Data.Validate()
}

type listResponse struct {
	Data  []Profile `json:"data"`
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

// GetProfile fetches the signed-in user's profile.
func (r *repository) GetProfile(ctx context.Context) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetProfile"),
	)

	var resp profileResponse
	err := r.client.Get(ctx, "/users/me", nil, &resp)
	if errors.Is(err, api.ErrNotFound) {
		log.Info("profile not found")
		return nil, ErrProfileNotFound
	}
	if err != nil {
		log.Error("failed to fetch profile", zap.Error(err))
		return nil, err
	}
	return resp.Data, nil
}

// UpdateProfile sends only the fields that are set.
func (r *repository) UpdateProfile(ctx context.Context, p UpdateProfileParams) (*Profile, error) {
	var resp profileResponse
	err := r.client.Patch(ctx, "/users/me", p, &resp)
	if errors.Is(err, api.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (r *repository) ListAll(ctx context.Context, q ListQuery) (*List, error) {
	var resp listResponse
	if err := r.client.Get(ctx, "/admin/users", api.PageQuery(q.Page, q.Limit, q.Search), &resp); err != nil {
		return nil, err
	}

	l := &List{Items: resp.Data, Total: len(resp.Data)}
	if resp.Total != nil {
		l.Total = *resp.Total
	}
	return l, nil
}

func (r *repository) UpdateRole(ctx context.Context, id string, role auth.Role) (*Profile, error) {
	var resp profileResponse
	err := r.client.Patch(ctx, "/admin/users/"+url.PathEscape(id)+"/role", map[string]auth.Role{"role": role}, &resp)
	if errors.Is(err, api.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	err := r.client.Delete(ctx, "/admin/users/"+url.PathEscape(id))
	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	return err
}
