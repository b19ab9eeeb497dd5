package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipLimiter keeps one token bucket per client IP. Entries idle for an hour
// are dropped by a background sweep so the map cannot grow unbounded.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipEntry
	limit    rate.Limit
	burst    int
}

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(limit rate.Limit, burst int) *ipLimiter {
	l := &ipLimiter{
		limiters: map[string]*ipEntry{},
		limit:    limit,
		burst:    burst,
	}
	go l.sweep()
	return l
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (l *ipLimiter) sweep() {
	for range time.Tick(10 * time.Minute) {
		l.mu.Lock()
		for ip, entry := range l.limiters {
			if time.Since(entry.lastSeen) > time.Hour {
				delete(l.limiters, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit allows requestsPerMinute per client IP with a matching burst.
func RateLimit(requestsPerMinute int) gin.HandlerFunc {
	limiter := newIPLimiter(rate.Limit(float64(requestsPerMinute)/60.0), requestsPerMinute)
	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests from this IP, please try again later.",
			})
			return
		}
		c.Next()
	}
}

// LeadSubmissionLimit is the stricter bucket on the public lead endpoint.
func LeadSubmissionLimit(leadsPerHour int) gin.HandlerFunc {
	burst := leadsPerHour / 4
	if burst < 1 {
		burst = 1
	}
	limiter := newIPLimiter(rate.Limit(float64(leadsPerHour)/3600.0), burst)
	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many lead submissions. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
