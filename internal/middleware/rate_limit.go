package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
	"ise-marketing/propdesk/internal/common"
	"ise-marketing/propdesk/internal/metrics"
)

// RateLimiter hands out one token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	rps       rate.Limit
	burst     int
	whitelist map[string]bool
	metrics   *metrics.MetricsRegistry
}

func NewRateLimiter(rps float64, burst int, metricsReg *metrics.MetricsRegistry, whitelist ...string) *RateLimiter {
	wl := map[string]bool{
		"127.0.0.1": true, // local tooling
		"::1":       true,
	}
	for _, ip := range whitelist {
		wl[ip] = true
	}
	return &RateLimiter{
		limiters:  make(map[string]*rate.Limiter),
		rps:       rate.Limit(rps),
		burst:     burst,
		whitelist: wl,
		metrics:   metricsReg,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, exists := rl.limiters[ip]; exists {
		return limiter
	}
	limiter := rate.NewLimiter(rl.rps, rl.burst)
	rl.limiters[ip] = limiter
	return limiter
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if rl.whitelist[ip] {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.getLimiter(ip).Allow() {
			if rl.metrics != nil {
				rl.metrics.RateLimitedTotal.Inc()
			}
			common.RespondError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}
