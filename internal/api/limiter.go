package api

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

const (
	tierGeneral = "general"
	tierStrict  = "strict"
)

// Login, order placement, booking (Strict). The general tier comes from
// configuration.
const (
	limitStrict = rate.Limit(2)
	burstStrict = 5
)

// limiter holds one token bucket per tier so a burst of catalog reads never
// starves an order submission, and vice versa.
type limiter struct {
	mu      sync.Mutex
	general rate.Limit
	burst   int
	tiers   map[string]*rate.Limiter
}

func newLimiter(r rate.Limit, burst int) *limiter {
	return &limiter{general: r, burst: burst, tiers: make(map[string]*rate.Limiter)}
}

func (l *limiter) get(tier string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.tiers[tier]
	if !ok {
		if tier == tierStrict {
			lim = rate.NewLimiter(limitStrict, burstStrict)
		} else {
			lim = rate.NewLimiter(l.general, l.burst)
		}
		l.tiers[tier] = lim
	}
	return lim
}

// wait blocks until the request may go out; it reports whether it had to wait.
func (l *limiter) wait(ctx context.Context, method, path string) (bool, error) {
	lim := l.get(resolveTier(method, path))
	if lim.Allow() {
		return false, nil
	}
	return true, lim.Wait(ctx)
}

// resolveTier determines which rate limit policy applies to the request.
func resolveTier(method, path string) string {
	if method == http.MethodPost {
		for _, p := range []string{"/auth/", "/orders", "/bookings", "/food-orders"} {
			if strings.HasPrefix(path, p) {
				return tierStrict
			}
		}
	}
	return tierGeneral
}
