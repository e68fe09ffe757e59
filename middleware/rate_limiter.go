// middleware/rate_limiter.go
package middleware

import (
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type endpointLimit struct {
	limit rate.Limit
	burst int
}

type RateLimiter struct {
	ips            map[string]*rate.Limiter
	blockedIPs     map[string]time.Time
	mu             *sync.RWMutex
	defaultLimit   rate.Limit
	defaultBurst   int
	blockDuration  time.Duration
	endpointLimits map[string]endpointLimit
}

func NewRateLimiter() *RateLimiter {
	limiter := &RateLimiter{
		ips:            make(map[string]*rate.Limiter),
		blockedIPs:     make(map[string]time.Time),
		mu:             &sync.RWMutex{},
		defaultLimit:   rate.Every(100 * time.Millisecond), // 10 requests per second
		defaultBurst:   20,
		blockDuration:  5 * time.Minute,
		endpointLimits: make(map[string]endpointLimit),
	}

	// Uploads move real bytes; keep them slow
	limiter.endpointLimits["/api/reels"] = endpointLimit{
		limit: rate.Every(500 * time.Millisecond), // 2 requests per second
		burst: 5,
	}

	// Search fans out two queries per request
	limiter.endpointLimits["/api/search"] = endpointLimit{
		limit: rate.Every(200 * time.Millisecond), // 5 requests per second
		burst: 10,
	}

	go limiter.cleanupBlockedIPs()

	return limiter
}

func (r *RateLimiter) cleanupBlockedIPs() {
	for {
		time.Sleep(1 * time.Hour)
		r.sweepExpiredBlocks(time.Now())
	}
}

// sweepExpiredBlocks drops expired blocks along with every per-path limiter
// owned by the unblocked IPs, so their state resets and the maps stay bounded.
func (r *RateLimiter) sweepExpiredBlocks(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for ip, blockUntil := range r.blockedIPs {
		if now.After(blockUntil) {
			delete(r.blockedIPs, ip)
			r.removeLimitersLocked(ip)
		}
	}
}

// removeLimitersLocked deletes all limiters keyed under the IP. Limiter keys
// are ip:path, one per endpoint. Callers hold mu.
func (r *RateLimiter) removeLimitersLocked(ip string) {
	prefix := ip + ":"
	for key := range r.ips {
		if strings.HasPrefix(key, prefix) {
			delete(r.ips, key)
		}
	}
}

func (r *RateLimiter) getLimiter(ip, path string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ip + ":" + path
	if limiter, ok := r.ips[key]; ok {
		return limiter
	}

	limit := r.defaultLimit
	burst := r.defaultBurst
	if override, ok := r.endpointLimits[path]; ok {
		limit = override.limit
		burst = override.burst
	}

	limiter := rate.NewLimiter(limit, burst)
	r.ips[key] = limiter
	return limiter
}

func (r *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			// Media serving and the event stream are exempt
			if strings.HasPrefix(path, "/uploads/") || path == "/ws" {
				return next(c)
			}

			ip := c.RealIP()

			r.mu.Lock()
			if blockUntil, blocked := r.blockedIPs[ip]; blocked {
				if time.Now().Before(blockUntil) {
					r.mu.Unlock()
					return c.JSON(429, map[string]string{
						"message":    "IP address blocked due to too many requests",
						"retryAfter": blockUntil.Format(time.RFC3339),
					})
				}
				delete(r.blockedIPs, ip)
				r.removeLimitersLocked(ip)
			}
			r.mu.Unlock()

			limiter := r.getLimiter(ip, path)
			if !limiter.Allow() {
				r.mu.Lock()
				r.blockedIPs[ip] = time.Now().Add(r.blockDuration)
				r.mu.Unlock()
				return c.JSON(429, map[string]string{
					"message": "Too many requests",
				})
			}

			return next(c)
		}
	}
}
