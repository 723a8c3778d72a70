package middleware

import (
    "math"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/restaurant-seat-reservation/internal/config"
)

// limiterScript refills the bucket at KEYS[1] for the time elapsed since the
// last refill, then takes one token if available.  It returns
// {allowed, remaining, retry_after_ms}.
var limiterScript = redis.NewScript(`
    local key = KEYS[1]
    local now_ms = tonumber(ARGV[1])
    local capacity = tonumber(ARGV[2])
    local refill_tokens = tonumber(ARGV[3])
    local interval_ms = tonumber(ARGV[4])
    local ttl_seconds = tonumber(ARGV[5])

    local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
    local tokens = tonumber(state[1])
    local last_refill = tonumber(state[2])

    if tokens == nil or last_refill == nil then
        tokens = capacity
        last_refill = now_ms
    end

    if interval_ms > 0 and refill_tokens > 0 then
        local elapsed = math.max(0, now_ms - last_refill)
        local intervals = math.floor(elapsed / interval_ms)
        if intervals > 0 then
            tokens = math.min(capacity, tokens + (intervals * refill_tokens))
            last_refill = last_refill + (intervals * interval_ms)
        end
    end

    local allowed = 0
    local retry_after_ms = 0
    if tokens > 0 then
        allowed = 1
        tokens = tokens - 1
    else
        local until_next = interval_ms - (now_ms - last_refill)
        if until_next < 0 then until_next = 0 end
        retry_after_ms = until_next
    end

    redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill, 'capacity', capacity)
    redis.call('EXPIRE', key, ttl_seconds)

    return { allowed, tokens, retry_after_ms }
`)

// NewTokenBucket limits requests per key with a token bucket kept in a Redis
// hash.  Refill and take happen atomically inside limiterScript, so several
// server processes can share one bucket.  Redis errors fail open.  A nil
// client or a disabled config yields a pass-through middleware.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passThrough
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := buildRateKey(cfg, c)
            args := []interface{}{
                time.Now().UnixMilli(),
                cfg.Capacity,
                cfg.RefillTokens,
                cfg.RefillInterval.Milliseconds(),
                int64(cfg.TTL / time.Second),
            }

            vals, err := limiterScript.Run(c.Request().Context(), rdb, []string{key}, args...).Result()
            if err != nil {
                if cfg.Debug {
                    c.Logger().Warnf("[ratelimit] redis error for key=%s: %v", key, err)
                }
                return next(c)
            }
            res, ok := parseBucketResult(vals)
            if !ok {
                if cfg.Debug {
                    c.Logger().Warnf("[ratelimit] unexpected script result for key=%s: %#v", key, vals)
                }
                return next(c)
            }

            h := c.Response().Header()
            h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
            h.Set("X-RateLimit-Remaining", strconv.FormatInt(res.remaining, 10))
            if cfg.Debug {
                h.Set("X-RateLimit-Key", key)
            }
            if res.allowed {
                return next(c)
            }

            secs := int(math.Ceil(float64(res.retryAfter) / float64(time.Second)))
            h.Set("Retry-After", strconv.Itoa(secs))
            if cfg.Debug {
                c.Logger().Infof("[ratelimit] block key=%s retry=%s", key, res.retryAfter)
            }
            return c.JSON(http.StatusTooManyRequests, echo.Map{
                "error":       "rate limit exceeded",
                "retry_after": secs,
            })
        }
    }
}

type bucketResult struct {
    allowed    bool
    remaining  int64
    retryAfter time.Duration
}

// parseBucketResult decodes the {allowed, remaining, retry_after_ms} reply.
// Lua numbers arrive as int64 from go-redis.
func parseBucketResult(v interface{}) (bucketResult, bool) {
    arr, ok := v.([]interface{})
    if !ok || len(arr) != 3 {
        return bucketResult{}, false
    }
    nums := make([]int64, 3)
    for i, x := range arr {
        n, ok := x.(int64)
        if !ok {
            return bucketResult{}, false
        }
        nums[i] = n
    }
    if nums[2] < 0 {
        nums[2] = 0
    }
    return bucketResult{
        allowed:    nums[0] == 1,
        remaining:  nums[1],
        retryAfter: time.Duration(nums[2]) * time.Millisecond,
    }, true
}

// buildRateKey joins the request attributes selected by cfg.KeyStrategy:
// any of ip, staff and route, e.g. "ip_route" or "staff".  Unknown
// strategies use all three.
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    attrs := map[string]string{
        "ip":    ip,
        "staff": principal(c),
        "route": c.Request().Method + " " + c.Path(),
    }
    parts := []string{cfg.Prefix}
    for _, name := range strategyParts(cfg.KeyStrategy) {
        parts = append(parts, name, attrs[name])
    }
    return strings.Join(parts, ":")
}

func strategyParts(strategy string) []string {
    var out []string
    for _, p := range strings.Split(strings.ToLower(strategy), "_") {
        switch p {
        case "ip", "staff", "route":
            out = append(out, p)
        }
    }
    if len(out) == 0 {
        return []string{"ip", "staff", "route"}
    }
    return out
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }
