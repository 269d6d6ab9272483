package api

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ingestRateLimiter is a fixed-window per-minute limiter keyed by provider
// slot and remote IP. Disabled unless configured.
type ingestRateLimiter struct {
	enabled bool
	limit   int

	mu       sync.Mutex
	window   int64
	counters map[string]int
}

func newIngestRateLimiter(cfg RateLimitPolicy) *ingestRateLimiter {
	return &ingestRateLimiter{
		enabled:  cfg.Enabled,
		limit:    cfg.IngestPerMinute,
		window:   currentMinuteWindow(),
		counters: make(map[string]int),
	}
}

func (l *ingestRateLimiter) Allow(r *http.Request, provider string) bool {
	if l == nil || !l.enabled || l.limit <= 0 {
		return true
	}
	nowWindow := currentMinuteWindow()
	key := provider + "|" + requestRemoteIP(r)

	l.mu.Lock()
	defer l.mu.Unlock()
	if nowWindow != l.window {
		l.window = nowWindow
		l.counters = make(map[string]int)
	}
	l.counters[key]++
	return l.counters[key] <= l.limit
}

func currentMinuteWindow() int64 {
	return time.Now().UTC().Unix() / 60
}

func requestRemoteIP(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
