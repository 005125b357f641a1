package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const visitorIdleTimeout = 10 * time.Minute

// RateLimiterConfig holds the configuration for the rate limiter
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiterData keeps one limiter per client IP.
type rateLimiterData struct {
	config    RateLimiterConfig
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

func (d *rateLimiterData) limiterFor(ip string, now time.Time) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	if now.Sub(d.lastSweep) > visitorIdleTimeout {
		for key, v := range d.visitors {
			if now.Sub(v.lastSeen) > visitorIdleTimeout {
				delete(d.visitors, key)
			}
		}
		d.lastSweep = now
	}

	v, ok := d.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(d.config.RequestsPerSecond), d.config.Burst)}
		d.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// NewRateLimiterMiddleware limits every client IP to the configured rate.
func NewRateLimiterMiddleware(config RateLimiterConfig) gin.HandlerFunc {
	data := &rateLimiterData{
		config:    config,
		visitors:  map[string]*visitor{},
		lastSweep: time.Now(),
	}

	return func(c *gin.Context) {
		if !data.limiterFor(c.ClientIP(), time.Now()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, Response{Message: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
