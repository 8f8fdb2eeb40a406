package admin

import (
	"context"
	"fmt"
	"sync"

	"localmart/internal/logger"
	"localmart/internal/order"

	"go.uber.org/zap"
)

// OrdersView is the back-office order table.
type OrdersView struct {
	repo    order.Repository
	confirm Confirmer
	table   *table[order.Order]

	mu     sync.Mutex
	status order.Status
}

func NewOrdersView(repo order.Repository, confirm Confirmer) *OrdersView {
	v := &OrdersView{repo: repo, confirm: confirm}
	v.table = newTable(func(ctx context.Context, page, limit int, search string) ([]order.Order, int, error) {
		v.mu.Lock()
		status := v.status
		v.mu.Unlock()

		l, err := repo.ListAll(ctx, order.ListQuery{Page: page, Limit: limit, Search: search, Status: status})
		if err != nil {
			return nil, 0, err
		}
		return l.Items, l.Total, nil
	})
	return v
}

func (v *OrdersView) View() Page[order.Order] { return v.table.view() }

func (v *OrdersView) Load(ctx context.Context) error { return v.table.load(ctx) }

func (v *OrdersView) GoTo(ctx context.Context, page int) error { return v.table.goTo(ctx, page) }

func (v *OrdersView) Search(ctx context.Context, term string) error { return v.table.search(ctx, term) }

// FilterStatus shows only orders in status; empty clears the filter.
func (v *OrdersView) FilterStatus(ctx context.Context, status order.Status) error {
	if status != "" {
		if _, err := order.ParseStatus(string(status)); err != nil {
			return err
		}
	}
	v.mu.Lock()
	v.status = status
	v.mu.Unlock()
	return v.table.goTo(ctx, 1)
}

// SetStatus moves an order to status after confirmation.
func (v *OrdersView) SetStatus(ctx context.Context, id string, status order.Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "admin"),
		zap.String("method", "SetStatus"),
		zap.String("order_id", id),
		zap.String("status", string(status)),
	)

	if _, err := order.ParseStatus(string(status)); err != nil {
		return err
	}
	if !v.confirm.Confirm(ctx, fmt.Sprintf("Change order %s to %q?", id, status)) {
		return ErrNotConfirmed
	}

	updated, err := v.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		log.Warn("status change failed", zap.Error(err))
		v.table.fail(err)
		return err
	}
	if updated != nil && updated.Status != "" {
		status = updated.Status
	}

	v.table.update(byOrderID(id), func(o *order.Order) { o.Status = status })
	log.Info("order status changed")
	return nil
}

func (v *OrdersView) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "admin"),
		zap.String("method", "DeleteOrder"),
		zap.String("order_id", id),
	)

	if !v.confirm.Confirm(ctx, fmt.Sprintf("Delete order %s? This cannot be undone.", id)) {
		return ErrNotConfirmed
	}
	if err := v.repo.Delete(ctx, id); err != nil {
		log.Warn("delete failed", zap.Error(err))
		v.table.fail(err)
		return err
	}

	v.table.remove(byOrderID(id))
	log.Info("order deleted")
	return nil
}

// Close drops loads still in flight.
func (v *OrdersView) Close() { v.table.close() }

func byOrderID(id string) func(*order.Order) bool {
	return func(o *order.Order) bool { return o.ID == id }
}
