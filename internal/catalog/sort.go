package catalog

import (
	"fmt"
	"sort"
)

type SortKey string

const (
	SortPopularity   SortKey = "popularity"
	SortPriceAsc     SortKey = "price_asc"
	SortPriceDesc    SortKey = "price_desc"
	SortDiscountDesc SortKey = "discount_desc"
	SortRatingDesc   SortKey = "rating_desc"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ParseSortKey accepts the wire names above; empty means popularity.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case "":
		return SortPopularity, nil
	case SortPopularity, SortPriceAsc, SortPriceDesc, SortDiscountDesc, SortRatingDesc:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
	}
}

// Sort returns a re-ordered copy of products. The order is total: equal
// primary keys fall back to name, then id. A missing popularity or rating
// counts as zero.
func Sort(products []Product, key SortKey) []Product {
	out := append([]Product(nil), products...)

	var primary func(a, b Product) int
	switch key {
	case SortPriceAsc:
		primary = func(a, b Product) int { return cmpFloat(a.Price, b.Price) }
	case SortPriceDesc:
		primary = func(a, b Product) int { return cmpFloat(b.Price, a.Price) }
	case SortDiscountDesc:
		primary = func(a, b Product) int { return cmpFloat(b.DiscountPercent(), a.DiscountPercent()) }
	case SortRatingDesc:
		primary = func(a, b Product) int { return cmpFloat(b.rating(), a.rating()) }
	default:
		primary = func(a, b Product) int { return b.popularity() - a.popularity() }
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := primary(out[i], out[j]); c != 0 {
			return c < 0
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// FilterByTags keeps products carrying every tag. No tags keeps everything.
func FilterByTags(products []Product, tags []string) []Product {
	if len(tags) == 0 {
		return append([]Product(nil), products...)
	}

	out := make([]Product, 0, len(products))
next:
	for _, p := range products {
		for _, tag := range tags {
			if !p.HasTag(tag) {
				continue next
			}
		}
		out = append(out, p)
	}
	return out
}

// Paginate slices one page out of products. page starts at 1.
func Paginate(products []Product, page, limit int) []Product {
	page, limit = normalizePage(page, limit)

	start := (page - 1) * limit
	if start >= len(products) {
		return []Product{}
	}
	end := start + limit
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}

func normalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	} else if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
