package user

import (
	"context"
	"strings"
	"time"

	"localmart/internal/auth"
	"localmart/internal/logger"
	"localmart/internal/validators"

	"go.uber.org/zap"
)

// SessionWriter keeps the locally stored user in step with the profile.
type SessionWriter interface {
	SaveUser(ctx context.Context, u *auth.User) error
}

type Service interface {
	GetProfile(ctx context.Context) (*Profile, error)
	UpdateProfile(ctx context.Context, p UpdateProfileParams) (*Profile, error)
}

type service struct {
	repo     Repository
	sessions SessionWriter
	now      func() time.Time
}

// NewService builds the profile service. sessions may be nil.
func NewService(repo Repository, sessions SessionWriter) Service {
	return &service{repo: repo, sessions: sessions, now: time.Now}
}

func (s *service) GetProfile(ctx context.Context) (*Profile, error) {
	return s.repo.GetProfile(ctx)
}

func (s *service) UpdateProfile(ctx context.Context, p UpdateProfileParams) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateProfile"),
	)

	p = trimParams(p)
	if p.empty() {
		return nil, ErrNothingToUpdate
	}
	if err := validateParams(p, s.now()); err != nil {
		log.Info("profile update rejected", zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.UpdateProfile(ctx, p)
	if err != nil {
		log.Error("failed to update profile", zap.Error(err))
		return nil, err
	}

	if s.sessions != nil {
		if err := s.sessions.SaveUser(ctx, updated.SessionUser()); err != nil {
			log.Warn("stored user not refreshed", zap.Error(err))
		}
	}

	log.Info("profile updated successfully", zap.String("user_id", updated.ID))
	return updated, nil
}

func validateParams(p UpdateProfileParams, now time.Time) error {
	errs := validators.FieldErrors{}

	if p.Name != nil && !validators.Required(*p.Name) {
		errs.Add("name", "name is required")
	}
	if p.Email != nil {
		if err := validators.ValidateEmail(*p.Email); err != nil {
			errs.Add("email", err.Error())
		}
	}
	// An empty phone clears it.
	if p.Phone != nil && *p.Phone != "" {
		if err := validators.ValidatePhone(*p.Phone); err != nil {
			errs.Add("phone", err.Error())
		}
	}
	if p.DateOfBirth != nil && p.DateOfBirth.After(now) {
		errs.Add("dateOfBirth", "date of birth cannot be in the future")
	}
	return errs.Err()
}

func trimParams(p UpdateProfileParams) UpdateProfileParams {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}
	p.Name = trim(p.Name)
	p.Email = trim(p.Email)
	p.Phone = trim(p.Phone)
	return p
}
