package catalog

import (
	"context"
	"time"

	"localmart/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Categories(ctx context.Context) ([]Category, error)
	// Products fetches one page from the server, then applies the tag filter
	// and sort order locally.
	Products(ctx context.Context, q Query) (*ProductList, error)
	Product(ctx context.Context, id string) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Categories(ctx context.Context) ([]Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Categories"),
	)

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		log.Error("failed to fetch categories", zap.Error(err))
		return nil, err
	}

	log.Debug("categories fetched", zap.Int("count", len(categories)))
	return categories, nil
}

func (s *service) Products(ctx context.Context, q Query) (*ProductList, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Products"),
	)

	start := time.Now()

	q.Page, q.Limit = normalizePage(q.Page, q.Limit)
	key, err := ParseSortKey(string(q.Sort))
	if err != nil {
		return nil, err
	}
	q.Sort = key

	log.Debug("product list requested",
		zap.Int("page", q.Page),
		zap.Int("limit", q.Limit),
		zap.String("category_id", q.CategoryID),
		zap.String("search", q.Search),
		zap.Strings("tags", q.Tags),
		zap.String("sort", string(q.Sort)),
	)

	list, err := s.repo.ListProducts(ctx, q)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	list.Items = Sort(FilterByTags(list.Items, q.Tags), q.Sort)

	log.Info("product list success",
		zap.Int("count", len(list.Items)),
		zap.Int("total", list.Total),
		zap.Duration("duration", time.Since(start)),
	)
	return list, nil
}

func (s *service) Product(ctx context.Context, id string) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Product"),
		zap.String("product_id", id),
	)

	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		log.Warn("failed to fetch product", zap.Error(err))
		return nil, err
	}
	return p, nil
}
