package auth

import (
	"context"
	"errors"
	"strings"

	"localmart/internal/api"
	"localmart/internal/logger"
	"localmart/internal/validators"

	"go.uber.org/zap"
)

type Service interface {
	Login(ctx context.Context, email, password string) (*User, error)
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Logout(ctx context.Context) error
	// Current returns the signed-in user, refreshing the stored record from
	// the server when only a token is present.
	Current(ctx context.Context) (*User, error)
}

type service struct {
	repo   Repository
	tokens *Tokens
}

func NewService(repo Repository, tokens *Tokens) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	email = strings.TrimSpace(strings.ToLower(email))
	errs := validators.FieldErrors{}
	if err := validators.ValidateEmail(email); err != nil {
		errs.Add("email", err.Error())
	}
	if password == "" {
		errs.Add("password", "password is required")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	token, u, err := s.repo.Login(ctx, email, password)
	if err != nil {
		log.Warn("login failed", zap.Error(err))
		return nil, err
	}

	if err := s.tokens.Save(ctx, token, u); err != nil {
		log.Error("failed to store session", zap.Error(err))
		return nil, err
	}

	log.Info("signed in", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	errs := validators.FieldErrors{}
	if !validators.Required(in.Name) {
		errs.Add("name", "name is required")
	}
	if err := validators.ValidateEmail(in.Email); err != nil {
		errs.Add("email", err.Error())
	}
	if in.Phone != "" {
		if err := validators.ValidatePhone(in.Phone); err != nil {
			errs.Add("phone", err.Error())
		}
	}
	if len(in.Password) < 8 {
		errs.Add("password", "password must be at least 8 characters")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	token, u, err := s.repo.Register(ctx, in)
	if err != nil {
		log.Warn("register failed", zap.Error(err))
		return nil, err
	}
	if err := s.tokens.Save(ctx, token, u); err != nil {
		return nil, err
	}

	log.Info("registered", zap.String("user_id", u.ID))
	return u, nil
}

func (s *service) Logout(ctx context.Context) error {
	return s.tokens.Clear(ctx)
}

func (s *service) Current(ctx context.Context) (*User, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNotSignedIn
	}

	u, err := s.tokens.User(ctx)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotSignedIn) {
		return nil, err
	}

	u, err = s.repo.Me(ctx)
	if errors.Is(err, api.ErrUnauthorized) {
		_ = s.tokens.Clear(ctx)
		return nil, ErrNotSignedIn
	}
	if err != nil {
		return nil, err
	}
	if err := s.tokens.SaveUser(ctx, u); err != nil {
		logger.FromCtx(ctx).Warn("failed to cache user record",
			zap.String("layer", "service"),
			zap.Error(err),
		)
	}
	return u, nil
}
