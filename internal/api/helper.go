package api

import (
	"net/url"
	"sort"
	"strconv"
)

func sortStrings(s []string) []string {
	sort.Strings(s)
	return s
}

// PageQuery builds the page/limit/search query used by every list endpoint.
func PageQuery(page, limit int, search string) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if search != "" {
		q.Set("search", search)
	}
	return q
}
