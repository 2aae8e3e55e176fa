package middleware

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"community_hub/internal/common"

	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles a route group per client IP using a Redis
// INCR+EXPIRE counter. It fails open: if Redis is unreachable the request
// proceeds.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, limit: limit, window: window}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := fmt.Sprintf("ratelimit:auth:%s", clientIP(r))

		count, err := rl.rdb.Incr(r.Context(), key).Result()
		if err != nil {
			log.Printf("rate limiter unavailable, allowing request: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			rl.rdb.Expire(r.Context(), key, rl.window)
		}
		if count > int64(rl.limit) {
			common.RespondWithError(w, http.StatusTooManyRequests, common.ErrTooManyRequests.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	// chi's RealIP middleware has already rewritten RemoteAddr when the
	// request came through a trusted proxy.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
