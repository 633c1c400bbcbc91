// Package ratelimit implements a fixed-window request limiter in Redis.
//
// Every (route, identity) pair gets a counter that expires one period after
// the first request of the window. Requests beyond the quota are rejected
// until the counter expires.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-contacts/internal/config"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "contacts:ratelimit:"

// fixedWindowLua returns 0 when the request is admitted, otherwise the
// remaining window in milliseconds.
const fixedWindowLua = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  local ttl = redis.call("PTTL", KEYS[1])
  if ttl <= 0 then
    ttl = tonumber(ARGV[1])
  end
  return ttl
end
return 0
`

// Limiter admits at most Times requests per Period for each route and
// identity.
type Limiter struct {
	rdb    *redis.Client
	times  int
	period time.Duration
	script *redis.Script
}

// NewLimiter returns a limiter backed by rdb. A nil client or a zero quota
// yields a limiter that admits everything.
func NewLimiter(rdb *redis.Client, cfg config.RateLimit) *Limiter {
	return &Limiter{
		rdb:    rdb,
		times:  cfg.Times,
		period: cfg.Period,
		script: redis.NewScript(fixedWindowLua),
	}
}

// Enabled reports whether requests are actually counted.
func (l *Limiter) Enabled() bool {
	return l != nil && l.rdb != nil && l.times > 0 && l.period > 0
}

// Allow counts one request of identity on route. When the quota is
// exhausted it returns false and the time until the window resets.
func (l *Limiter) Allow(ctx context.Context, route, identity string) (bool, time.Duration, error) {
	if !l.Enabled() {
		return true, 0, nil
	}

	res, err := l.script.Run(ctx, l.rdb, []string{key(route, identity)}, l.period.Milliseconds(), l.times).Int64()
	if err != nil {
		return true, 0, fmt.Errorf("ratelimit eval: %w", err)
	}
	if res == 0 {
		return true, 0, nil
	}

	return false, time.Duration(res) * time.Millisecond, nil
}

func key(route, identity string) string {
	return keyPrefix + route + ":" + identity
}
