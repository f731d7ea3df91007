package middleware

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"donationrelay/internal/domain"
)

type bucket struct {
	count int
	until time.Time
}

// FixedWindow counts requests per client in fixed windows of length per.
// Once a client reaches limit, requests are rejected with 429 until its
// window ends. Clients are keyed by socket address unless the limiter was
// built to trust X-Forwarded-For.
type FixedWindow struct {
	limit      int
	per        time.Duration
	trustProxy bool
	now        func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	nextSweep time.Time
}

func NewFixedWindow(limit int, per time.Duration, trustProxy bool) *FixedWindow {
	return &FixedWindow{
		limit:      limit,
		per:        per,
		trustProxy: trustProxy,
		now:        time.Now,
		buckets:    make(map[string]*bucket),
	}
}

// take records one hit for key and returns whether it is allowed, the hits
// left and the window end.
func (f *FixedWindow) take(key string) (bool, int, time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	if now.After(f.nextSweep) {
		for k, b := range f.buckets {
			if now.After(b.until) {
				delete(f.buckets, k)
			}
		}
		f.nextSweep = now.Add(f.per)
	}

	b, ok := f.buckets[key]
	if !ok || now.After(b.until) {
		b = &bucket{count: 0, until: now.Add(f.per)}
		f.buckets[key] = b
	}
	if b.count >= f.limit {
		return false, 0, b.until
	}
	b.count++
	return true, f.limit - b.count, b.until
}

// Handler returns the middleware.
func (f *FixedWindow) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, remaining, until := f.take(rateLimitKey(r, f.trustProxy))

		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(f.limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(until.Unix(), 10))

		if !allowed {
			retry := int(math.Ceil(until.Sub(f.now()).Seconds()))
			if retry < 1 {
				retry = 1
			}
			h.Set("Retry-After", strconv.Itoa(retry))
			h.Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(domain.DonationResult{Success: false, Message: domain.MessageTooManyRequests})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit is shorthand for NewFixedWindow(limit, per, trustProxy).Handler.
func RateLimit(limit int, per time.Duration, trustProxy bool) func(http.Handler) http.Handler {
	return NewFixedWindow(limit, per, trustProxy).Handler
}

// rateLimitKey returns the client address a request is counted against.
// X-Forwarded-For is client-controlled, so its leftmost valid entry is only
// used when the service runs behind a proxy that rewrites it.
func rateLimitKey(r *http.Request, trustProxy bool) string {
	if trustProxy {
		for _, part := range strings.Split(r.Header.Get("X-Forwarded-For"), ",") {
			if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
				return ip.String()
			}
		}
	}
	return socketIP(r.RemoteAddr)
}

func socketIP(remoteAddr string) string {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.String()
	}
	return remoteAddr
}
