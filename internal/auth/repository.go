package auth

import (
	"context"
	"errors"

	"localmart/internal/api"
)

type Repository interface {
	Login(ctx context.Context, email, password string) (string, *User, error)
	Register(ctx context.Context, in RegisterInput) (string, *User, error)
	Me(ctx context.Context) (*User, error)
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

type repository struct {
	client *api.Client
}

func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

type sessionResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (r *sessionResponse) Validate() error {
	if r.Token == "" {
		return errors.New("missing token")
	}
	if r.User == nil {
		return errors.New("missing user")
	}
	return r.User.Validate()
}

type userResponse struct {
	Data *User `json:"data"`
}

func (r *userResponse) Validate() error {
	if r.Data == nil {
		return errors.New("missing data")
	}
	return r.Data.Validate()
}

func (r *repository) Login(ctx context.Context, email, password string) (string, *User, error) {
	body := map[string]string{"email": email, "password": password}

	var resp sessionResponse
	err := r.client.Post(ctx, "/auth/login", body, &resp)
	if errors.Is(err, api.ErrUnauthorized) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

func (r *repository) Register(ctx context.Context, in RegisterInput) (string, *User, error) {
	var resp sessionResponse
	err := r.client.Post(ctx, "/auth/register", in, &resp)
	if errors.Is(err, api.ErrConflict) {
		return "", nil, ErrEmailExists
	}
	if err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

func (r *repository) Me(ctx context.Context) (*User, error) {
	var resp userResponse
	if err := r.client.Get(ctx, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
