package admin

import (
	"context"
	"fmt"

	"localmart/internal/logger"

	"go.uber.org/zap"
)

type MessagesView struct {
	repo    Repository
	confirm Confirmer
	table   *table[Message]
}

func NewMessagesView(repo Repository, confirm Confirmer) *MessagesView {
	return &MessagesView{
		repo:    repo,
		confirm: confirm,
		table: newTable(func(ctx context.Context, page, limit int, search string) ([]Message, int, error) {
			l, err := repo.ListMessages(ctx, MessageQuery{Page: page, Limit: limit, Search: search})
			if err != nil {
				return nil, 0, err
			}
			return l.Items, l.Total, nil
		}),
	}
}

func (v *MessagesView) View() Page[Message] { return v.table.view() }

func (v *MessagesView) Load(ctx context.Context) error { return v.table.load(ctx) }

func (v *MessagesView) GoTo(ctx context.Context, page int) error { return v.table.goTo(ctx, page) }

func (v *MessagesView) Search(ctx context.Context, term string) error {
	return v.table.search(ctx, term)
}

// MarkRead is not destructive and goes out without confirmation.
func (v *MessagesView) MarkRead(ctx context.Context, id string) error {
	if err := v.repo.MarkRead(ctx, id); err != nil {
		logger.FromCtx(ctx).Warn("mark read failed",
			zap.String("layer", "admin"),
			zap.String("message_id", id),
			zap.Error(err),
		)
		v.table.fail(err)
		return err
	}
	v.table.update(byMessageID(id), func(m *Message) { m.Read = true })
	return nil
}

func (v *MessagesView) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "admin"),
		zap.String("method", "DeleteMessage"),
		zap.String("message_id", id),
	)

	if !v.confirm.Confirm(ctx, fmt.Sprintf("Delete message %s?", id)) {
		return ErrNotConfirmed
	}
	if err := v.repo.DeleteMessage(ctx, id); err != nil {
		log.Warn("delete failed", zap.Error(err))
		v.table.fail(err)
		return err
	}

	v.table.remove(byMessageID(id))
	log.Info("message deleted")
	return nil
}

func (v *MessagesView) Close() { v.table.close() }

func byMessageID(id string) func(*Message) bool {
	return func(m *Message) bool { return m.ID == id }
}
