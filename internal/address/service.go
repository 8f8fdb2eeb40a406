package address

import (
	"context"
	"fmt"

	"localmart/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Address, error)
	Get(ctx context.Context, addressID string) (*Address, error)
	Default(ctx context.Context) (*Address, error)

	Create(ctx context.Context, input Input) (*Address, error)
	Update(ctx context.Context, addressID string, input Input) (*Address, error)
	Delete(ctx context.Context, addressID string) error

	SetDefault(ctx context.Context, addressID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func parseID(id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id %q", ErrAddressNotFound, id)
	}
	return u, nil
}

func (s *service) List(ctx context.Context) ([]*Address, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, addressID string) (*Address, error) {
	id, err := parseID(addressID)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Default returns the address marked default, or the first one when none is.
func (s *service) Default(ctx context.Context) (*Address, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNoDefault
	}
	for _, a := range list {
		if a.IsDefault {
			return a, nil
		}
	}
	return list[0], nil
}

func (s *service) Create(ctx context.Context, input Input) (*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Create"),
	)

	input = input.normalized()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	addr, err := s.repo.Create(ctx, input)
	if err != nil {
		log.Error("failed to create address", zap.Error(err))
		return nil, err
	}

	log.Info("address created", zap.String("address_id", addr.ID.String()))
	return addr, nil
}

func (s *service) Update(ctx context.Context, addressID string, input Input) (*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Update"),
		zap.String("address_id", addressID),
	)

	id, err := parseID(addressID)
	if err != nil {
		return nil, err
	}
	input = input.normalized()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	addr, err := s.repo.Update(ctx, id, input)
	if err != nil {
		log.Error("failed to update address", zap.Error(err))
		return nil, err
	}

	log.Info("address updated")
	return addr, nil
}

func (s *service) Delete(ctx context.Context, addressID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Delete"),
		zap.String("address_id", addressID),
	)

	id, err := parseID(addressID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete address", zap.Error(err))
		return err
	}

	log.Info("address deleted")
	return nil
}

func (s *service) SetDefault(ctx context.Context, addressID string) error {
	id, err := parseID(addressID)
	if err != nil {
		return err
	}
	return s.repo.SetDefault(ctx, id)
}
