package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits requests per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	idle    time.Duration
}

func NewRateLimiter(limit rate.Limit, burst int, idle time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		burst:   burst,
		idle:    idle,
	}
}

var defaultLimiter = NewRateLimiter(20, 40, 3*time.Minute)

func init() {
	go func() {
		for {
			time.Sleep(time.Minute)
			defaultLimiter.Sweep(time.Now())
		}
	}()
}

// Sweep forgets clients not seen for longer than the idle window.
func (l *RateLimiter) Sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) > l.idle {
			delete(l.clients, ip)
		}
	}
}

func (l *RateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, found := l.clients[ip]
	if !found {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter.Allow()
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		if !l.allow(ip) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimitDefault applies the process-wide limiter.
func RateLimitDefault(next http.Handler) http.Handler {
	return defaultLimiter.Middleware(next)
}
