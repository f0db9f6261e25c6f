package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per key.
type RateLimiter struct {
	mu     sync.Mutex
	limits map[string]*visitor
	every  rate.Limit
	burst  int
	idle   time.Duration
	now    func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perMinute requests per key with the given burst.
// A non-positive perMinute disables limiting.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	every := rate.Inf
	if perMinute > 0 {
		every = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &RateLimiter{
		limits: make(map[string]*visitor),
		every:  every,
		burst:  burst,
		idle:   10 * time.Minute,
		now:    time.Now,
	}
}

// getLimiter gets or creates a limiter for the given key, dropping idle ones.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for k, v := range rl.limits {
		if now.Sub(v.lastSeen) > rl.idle {
			delete(rl.limits, k)
		}
	}

	v, ok := rl.limits[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.every, rl.burst)}
		rl.limits[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Allow checks if a request is allowed for the given key.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).AllowN(rl.now(), 1)
}

// RateLimitByIP rejects requests with 429 once a client IP exhausts its bucket.
func RateLimitByIP(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, please try again later",
			})
			return
		}
		c.Next()
	}
}
