package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"bodycomp-notion/internal/platform/logger"
	"bodycomp-notion/internal/platform/metrics"
)

const Window = time.Minute

// Limiter decide si una clave puede hacer otro request en la ventana actual.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type counter struct {
	count     int
	lastReset time.Time
}

// MemoryLimiter es una ventana fija por clave, en proceso.
type MemoryLimiter struct {
	limit    int
	counters map[string]*counter
	mu       sync.Mutex
	now      func() time.Time

	stop chan struct{}
	once sync.Once
}

// NewMemoryLimiter arranca la limpieza periódica; llamar Close al apagar.
func NewMemoryLimiter(limit int) *MemoryLimiter {
	rl := newMemoryLimiter(limit)

	go func() {
		ticker := time.NewTicker(Window)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.cleanup()
			case <-rl.stop:
				return
			}
		}
	}()

	return rl
}

func newMemoryLimiter(limit int) *MemoryLimiter {
	return &MemoryLimiter{
		limit:    limit,
		counters: make(map[string]*counter),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

func (rl *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	c, exists := rl.counters[key]

	if !exists {
		rl.counters[key] = &counter{count: 1, lastReset: now}
		return true, nil
	}

	if now.Sub(c.lastReset) >= Window {
		c.count = 1
		c.lastReset = now
		return true, nil
	}

	if c.count >= rl.limit {
		return false, nil
	}

	c.count++
	return true, nil
}

func (rl *MemoryLimiter) Close() {
	rl.once.Do(func() { close(rl.stop) })
}

func (rl *MemoryLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, c := range rl.counters {
		if now.Sub(c.lastReset) >= Window {
			delete(rl.counters, key)
		}
	}
}

// Middleware responde 429 cuando el cliente agotó la ventana.
// Si el limiter falla (p.ej. Redis caído) deja pasar y loguea.
func Middleware(l Limiter, log logger.Logger) func(http.Handler) http.Handler {
	log = logger.Scope(log, "RateLimit")

	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			ok, err := l.Allow(r.Context(), key)
			if err != nil {
				log.Warn("limiter unavailable, allowing request", map[string]any{
					"client": key,
					"err":    err,
				})
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				metrics.RateLimitDroppedTotal.Inc()
				w.Header().Set("Retry-After", "60")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey usa RemoteAddr (chi RealIP ya lo reescribe si hay X-Forwarded-For).
func clientKey(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
