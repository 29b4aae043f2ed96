package middleware

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultBurst       = 5
	visitorTTL         = 5 * time.Minute
	visitorSweepPeriod = time.Minute
)

type IPRateLimiter struct {
	visitors  sync.Map
	rps       rate.Limit
	burst     int
	log       *zap.Logger
	now       func() time.Time
	lastSweep atomic.Int64
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// NewIPRateLimiter allows perMinute requests per client IP with a small burst.
// A non-positive perMinute disables limiting.
func NewIPRateLimiter(perMinute int, logger *zap.Logger) *IPRateLimiter {
	l := &IPRateLimiter{
		burst: defaultBurst,
		log:   logger,
		now:   time.Now,
	}
	if perMinute > 0 {
		l.rps = rate.Limit(float64(perMinute) / 60.0)
	} else {
		l.rps = rate.Inf
	}
	l.lastSweep.Store(l.now().UnixNano())
	return l
}

func (l *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	now := l.now()
	v, ok := l.visitors.Load(ip)
	if !ok {
		nv := &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		v, _ = l.visitors.LoadOrStore(ip, nv)
	}
	vi := v.(*visitor)
	vi.lastSeen.Store(now.UnixNano())

	l.sweep(now)
	return vi.limiter
}

// sweep drops idle visitors; at most one caller per period does the work.
func (l *IPRateLimiter) sweep(now time.Time) {
	last := l.lastSweep.Load()
	if now.UnixNano()-last < int64(visitorSweepPeriod) ||
		!l.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}
	cutoff := now.Add(-visitorTTL).UnixNano()
	l.visitors.Range(func(k, v any) bool {
		if v.(*visitor).lastSeen.Load() < cutoff {
			l.visitors.Delete(k)
		}
		return true
	})
}

func (l *IPRateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !l.getLimiter(ip).Allow() {
			l.log.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{"code": "RATE_LIMITED", "message": "rate limit exceeded"},
			})
			return
		}
		c.Next()
	}
}
