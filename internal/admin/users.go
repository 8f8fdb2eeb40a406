package admin

import (
	"context"
	"fmt"

	"localmart/internal/auth"
	"localmart/internal/logger"
	"localmart/internal/user"

	"go.uber.org/zap"
)

type UsersView struct {
	repo    user.Repository
	confirm Confirmer
	table   *table[user.Profile]
}

func NewUsersView(repo user.Repository, confirm Confirmer) *UsersView {
	return &UsersView{
		repo:    repo,
		confirm: confirm,
		table: newTable(func(ctx context.Context, page, limit int, search string) ([]user.Profile, int, error) {
			l, err := repo.ListAll(ctx, user.ListQuery{Page: page, Limit: limit, Search: search})
			if err != nil {
				return nil, 0, err
			}
			return l.Items, l.Total, nil
		}),
	}
}

func (v *UsersView) View() Page[user.Profile] { return v.table.view() }

func (v *UsersView) Load(ctx context.Context) error { return v.table.load(ctx) }

func (v *UsersView) GoTo(ctx context.Context, page int) error { return v.table.goTo(ctx, page) }

func (v *UsersView) Search(ctx context.Context, term string) error { return v.table.search(ctx, term) }

func (v *UsersView) SetRole(ctx context.Context, id string, role auth.Role) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "admin"),
		zap.String("method", "SetRole"),
		zap.String("user_id", id),
		zap.String("role", string(role)),
	)

	if role != auth.RoleUser && role != auth.RoleAdmin {
		return fmt.Errorf("%w: %q", user.ErrInvalidRole, role)
	}
	if !v.confirm.Confirm(ctx, fmt.Sprintf("Make user %s %s?", id, role)) {
		return ErrNotConfirmed
	}

	if _, err := v.repo.UpdateRole(ctx, id, role); err != nil {
		log.Warn("role change failed", zap.Error(err))
		v.table.fail(err)
		return err
	}

	v.table.update(byUserID(id), func(p *user.Profile) { p.Role = role })
	log.Info("user role changed")
	return nil
}

func (v *UsersView) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "admin"),
		zap.String("method", "DeleteUser"),
		zap.String("user_id", id),
	)

	prompt := fmt.Sprintf("Delete user %s?", id)
	if p, ok := v.table.find(byUserID(id)); ok && p.Email != "" {
		prompt = fmt.Sprintf("Delete user %s (%s)?", p.Name, p.Email)
	}
	if !v.confirm.Confirm(ctx, prompt) {
		return ErrNotConfirmed
	}

	if err := v.repo.Delete(ctx, id); err != nil {
		log.Warn("delete failed", zap.Error(err))
		v.table.fail(err)
		return err
	}

	v.table.remove(byUserID(id))
	log.Info("user deleted")
	return nil
}

func (v *UsersView) Close() { v.table.close() }

func byUserID(id string) func(*user.Profile) bool {
	return func(p *user.Profile) bool { return p.ID == id }
}
