package booking

import (
	"context"
	"strings"

	"localmart/internal/logger"

	"go.uber.org/zap"
)

// Service covers the "my bookings" page; new bookings go through Flow.
type Service interface {
	ListMine(ctx context.Context, q ListQuery) (*List, error)
	Cancel(ctx context.Context, id string) (*Booking, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListMine(ctx context.Context, q ListQuery) (*List, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 20
	} else if q.Limit > 100 {
		q.Limit = 100
	}
	return s.repo.ListMine(ctx, q)
}

func (s *service) Cancel(ctx context.Context, id string) (*Booking, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Cancel"),
		zap.String("booking_id", id),
	)

	if strings.TrimSpace(id) == "" {
		return nil, ErrBookingNotFound
	}

	b, err := s.repo.Cancel(ctx, id)
	if err != nil {
		log.Warn("cancel failed", zap.Error(err))
		return nil, err
	}
	log.Info("booking cancelled")
	return b, nil
}
