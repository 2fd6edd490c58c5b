package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// submitLimiterIdleTTL is how long a client bucket survives without requests.
const submitLimiterIdleTTL = 10 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// submitLimiter caps date submissions per client. A zero rate disables it.
type submitLimiter struct {
	mu        sync.Mutex
	perMinute int
	buckets   map[string]*clientBucket
	lastSweep time.Time
}

func newSubmitLimiter(perMinute int) *submitLimiter {
	return &submitLimiter{
		perMinute: perMinute,
		buckets:   make(map[string]*clientBucket),
	}
}

func (limiter *submitLimiter) allow(key string, now time.Time) bool {
	if limiter == nil || limiter.perMinute <= 0 {
		return true
	}

	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	limiter.evictIdle(now)

	bucket, ok := limiter.buckets[key]
	if !ok {
		bucket = &clientBucket{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(limiter.perMinute)), limiter.perMinute),
		}
		limiter.buckets[key] = bucket
	}
	bucket.lastSeen = now
	return bucket.limiter.AllowN(now, 1)
}

// evictIdle drops buckets untouched for submitLimiterIdleTTL. An idle bucket has
// refilled completely, so removing it does not change any decision.
func (limiter *submitLimiter) evictIdle(now time.Time) {
	if now.Sub(limiter.lastSweep) < submitLimiterIdleTTL {
		return
	}
	limiter.lastSweep = now
	for key, bucket := range limiter.buckets {
		if now.Sub(bucket.lastSeen) >= submitLimiterIdleTTL {
			delete(limiter.buckets, key)
		}
	}
}

func requestLimiterKey(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.IP())
	if key == "" {
		return "unknown"
	}
	return key
}
