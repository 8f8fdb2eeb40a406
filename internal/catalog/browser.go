package catalog

import (
	"context"
	"sync"

	"localmart/internal/api"
	"localmart/internal/cart"
	"localmart/internal/logger"
	"localmart/internal/utils"

	"go.uber.org/zap"
)

type State string

const (
	StateLoading   State = "loading"
	StatePopulated State = "populated"
	StateEmpty     State = "empty"
	StateFailed    State = "failed"
)

// View is what a product grid renders.
type View struct {
	State    State
	Query    Query
	Products []Product
	Total    int
	Error    string
}

// CartAdder is the part of the cart store a listing needs.
type CartAdder interface {
	AddItem(ctx context.Context, p cart.Product) error
}

// Browser drives one product grid. Only the response to the most recent Load
// is ever applied; responses arriving after Close are dropped.
type Browser struct {
	svc  Service
	cart CartAdder
	seq  utils.Sequence

	mu      sync.Mutex
	view    View
	fetched []Product
}

func NewBrowser(svc Service, c CartAdder) *Browser {
	return &Browser{svc: svc, cart: c, view: View{State: StateLoading}}
}

func (b *Browser) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	v := b.view
	v.Products = append([]Product(nil), b.view.Products...)
	return v
}

// Load fetches the page for q. Tags and sort are applied locally so Refine
// can change them without another request.
func (b *Browser) Load(ctx context.Context, q Query) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "browser"),
		zap.String("method", "Load"),
	)

	token := b.seq.Begin()
	started := b.seq.Apply(token, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.view = View{State: StateLoading, Query: q}
	})
	if !started {
		return nil
	}

	server := q
	server.Tags = nil
	server.Sort = SortPopularity
	list, err := b.svc.Products(ctx, server)

	applied := b.seq.Apply(token, func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if err != nil {
			b.fetched = nil
			b.view = View{State: StateFailed, Query: b.view.Query, Error: api.Message(err)}
			return
		}
		// Refine may have run while the request was out.
		cur := q
		cur.Tags, cur.Sort = b.view.Query.Tags, b.view.Query.Sort
		b.fetched = list.Items
		b.view = derive(cur, b.fetched, list.Total)
	})
	if !applied {
		log.Debug("discarded stale product response", zap.Uint64("token", token))
		return nil
	}
	return err
}

// Refine re-filters and re-sorts what was already fetched.
func (b *Browser) Refine(tags []string, key SortKey) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.view.State == StateLoading || b.view.State == StateFailed {
		b.view.Query.Tags = tags
		b.view.Query.Sort = key
		return
	}
	q := b.view.Query
	q.Tags = tags
	q.Sort = key
	b.view = derive(q, b.fetched, b.view.Total)
}

func (b *Browser) AddToCart(ctx context.Context, p Product) error {
	return b.cart.AddItem(ctx, p.CartProduct())
}

// Close drops any response still in flight.
func (b *Browser) Close() {
	b.seq.Close()
}

func derive(q Query, fetched []Product, total int) View {
	items := Sort(FilterByTags(fetched, q.Tags), q.Sort)
	state := StatePopulated
	if len(items) == 0 {
		state = StateEmpty
	}
	return View{State: state, Query: q, Products: items, Total: total}
}
