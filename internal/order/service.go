package order

import (
	"context"
	"strings"

	"localmart/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Place(ctx context.Context, req PlaceRequest) (*Order, error)
	ListMine(ctx context.Context, q ListQuery) (*List, error)
	Get(ctx context.Context, id string) (*Order, error)
	Cancel(ctx context.Context, id string) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Place(ctx context.Context, req PlaceRequest) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Place"),
	)

	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}

	o, err := s.repo.Place(ctx, req)
	if err != nil {
		log.Error("failed to place order", zap.Error(err))
		return nil, err
	}

	log.Info("order placed",
		zap.String("order_id", o.ID),
		zap.Int("items", len(req.Items)),
		zap.Float64("total", req.Total),
		zap.String("payment_method", req.PaymentMethod),
	)
	return o, nil
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

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrOrderNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *service) Cancel(ctx context.Context, id string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Cancel"),
		zap.String("order_id", id),
	)

	o, err := s.repo.Cancel(ctx, id)
	if err != nil {
		log.Warn("cancel failed", zap.Error(err))
		return nil, err
	}
	log.Info("order cancelled")
	return o, nil
}
