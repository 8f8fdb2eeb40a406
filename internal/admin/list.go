package admin

import (
	"context"
	"sync"

	"localmart/internal/api"
	"localmart/internal/utils"
)

const defaultPageSize = 20

// Page is what an admin table renders.
type Page[T any] struct {
	Number  int
	Search  string
	Items   []T
	Total   int
	Loading bool
	Banner  string
}

// Pages is how many pages Total spans at size per page.
func (p Page[T]) Pages(size int) int {
	if size <= 0 || p.Total == 0 {
		return 1
	}
	return (p.Total + size - 1) / size
}

type fetchFunc[T any] func(ctx context.Context, page, limit int, search string) ([]T, int, error)

// table holds one view's page, search term and rows. Each view owns its own
// table, so paging one list never moves another.
type table[T any] struct {
	fetch fetchFunc[T]
	limit int

	seq utils.Sequence

	mu   sync.Mutex
	page Page[T]
}

func newTable[T any](fetch func(ctx context.Context, page, limit int, search string) ([]T, int, error)) *table[T] {
	return &table[T]{
		fetch: fetch,
		limit: defaultPageSize,
		page:  Page[T]{Number: 1},
	}
}

func (t *table[T]) view() Page[T] {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := t.page
	p.Items = append([]T(nil), t.page.Items...)
	return p
}

func (t *table[T]) goTo(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	t.mu.Lock()
	t.page.Number = page
	t.mu.Unlock()
	return t.load(ctx)
}

// search resets to the first page.
func (t *table[T]) search(ctx context.Context, term string) error {
	t.mu.Lock()
	t.page.Search = term
	t.page.Number = 1
	t.mu.Unlock()
	return t.load(ctx)
}

// load fetches the current page. A response overtaken by a newer load, or
// arriving after close, is dropped.
func (t *table[T]) load(ctx context.Context) error {
	token := t.seq.Begin()

	var page int
	var search string
	started := t.seq.Apply(token, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		page, search = t.page.Number, t.page.Search
		t.page.Loading = true
	})
	if !started {
		return nil
	}

	items, total, err := t.fetch(ctx, page, t.limit, search)

	t.seq.Apply(token, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.page.Loading = false
		if err != nil {
			t.page.Banner = api.Message(err)
			return
		}
		t.page.Items = items
		t.page.Total = total
		t.page.Banner = ""
	})
	return err
}

func (t *table[T]) find(match func(*T) bool) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.page.Items {
		if match(&t.page.Items[i]) {
			return t.page.Items[i], true
		}
	}
	var zero T
	return zero, false
}

// supersede makes any load still in flight stale. Its rows were read before
// a local change and would bring that change back.
func (t *table[T]) supersede() {
	t.seq.Begin()
	t.mu.Lock()
	t.page.Loading = false
	t.mu.Unlock()
}

func (t *table[T]) update(match func(*T) bool, fn func(*T)) {
	t.supersede()

	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.page.Items {
		if match(&t.page.Items[i]) {
			fn(&t.page.Items[i])
		}
	}
	t.page.Banner = ""
}

func (t *table[T]) remove(match func(*T) bool) {
	t.supersede()

	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.page.Items[:0:0]
	for i := range t.page.Items {
		if match(&t.page.Items[i]) {
			if t.page.Total > 0 {
				t.page.Total--
			}
			continue
		}
		kept = append(kept, t.page.Items[i])
	}
	t.page.Items = kept
	t.page.Banner = ""
}

func (t *table[T]) fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.page.Banner = api.Message(err)
}

func (t *table[T]) close() {
	t.seq.Close()
}
