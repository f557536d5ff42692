package scrape

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// domainLimiter rate-limits fetches per host so concurrent scraping of
// many sources stays polite to any single site.
type domainLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func newDomainLimiter(requestsPerSecond float64, burst int) *domainLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2
	}
	if burst <= 0 {
		burst = 5
	}
	return &domainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (l *domainLimiter) wait(ctx context.Context, host string) error {
	return l.limiter(host).Wait(ctx)
}

func (l *domainLimiter) limiter(host string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[host]
	l.mu.RUnlock()
	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[host]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.rate, l.burst)
	l.limiters[host] = limiter

	return limiter
}
