package admin

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"localmart/internal/api"
)

// Repository covers the back-office endpoints that belong to no other
// domain. Orders and users go through their own repositories.
type Repository interface {
	Stats(ctx context.Context) (*Stats, error)
	ListMessages(ctx context.Context, q MessageQuery) (*MessageList, error)
	MarkRead(ctx context.Context, id string) error
	DeleteMessage(ctx context.Context, id string) error
}

type repository struct {
	client *api.Client
}

func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

type statsResponse struct {
	Data *Stats `json:"data"`
}

func (r *statsResponse) Validate() error {
	if r.Data == nil {
		return errors.New("missing data")
	}
	return nil
}

type messagesResponse struct {
	Data  []Message `json:"data"`
	Total *int      `json:"total"`
}

func (r *messagesResponse) Validate() error {
	if r.Data == nil {
		return errors.New("missing data")
	}
	for i := range r.Data {
		if err := r.Data[i].Validate(); err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
	}
	return nil
}

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	var resp statsResponse
	if err := r.client.Get(ctx, "/admin/stats", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (r *repository) ListMessages(ctx context.Context, q MessageQuery) (*MessageList, error) {
	var resp messagesResponse
	if err := r.client.Get(ctx, "/admin/messages", api.PageQuery(q.Page, q.Limit, q.Search), &resp); err != nil {
		return nil, err
	}

	l := &MessageList{Items: resp.Data, Total: len(resp.Data)}
	if resp.Total != nil {
		l.Total = *resp.Total
	}
	return l, nil
}

func (r *repository) MarkRead(ctx context.Context, id string) error {
	err := r.client.Patch(ctx, "/admin/messages/"+url.PathEscape(id)+"/read", nil, nil)
	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrMessageNotFound, id)
	}
	return err
}

func (r *repository) DeleteMessage(ctx context.Context, id string) error {
	err := r.client.Delete(ctx, "/admin/messages/"+url.PathEscape(id))
	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrMessageNotFound, id)
	}
	return err
}
