package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/restaurant-seat-reservation/internal/config"
	"github.com/iliyamo/restaurant-seat-reservation/internal/utils"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func do(e *echo.Echo, method, path string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenBucketBlocksWhenEmpty(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled: true, Capacity: 2, RefillTokens: 1, RefillInterval: time.Hour,
		TTL: 5 * time.Hour, KeyStrategy: "ip_route", Prefix: "rl",
	}
	e := echo.New()
	e.POST("/book", func(c echo.Context) error { return c.NoContent(http.StatusCreated) }, NewTokenBucket(cfg, rdb))

	for i := 0; i < 2; i++ {
		rec := do(e, http.MethodPost, "/book", nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("request %d: status %d", i, rec.Code)
		}
		if got := rec.Header().Get("X-RateLimit-Remaining"); got != strconv.Itoa(1-i) {
			t.Fatalf("request %d: remaining %q", i, got)
		}
	}
	rec := do(e, http.MethodPost, "/book", nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("missing Retry-After")
	}
}

func TestTokenBucketFailsOpen(t *testing.T) {
	mr, rdb := newRedis(t)
	mr.Close()
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Second, TTL: time.Minute}
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, NewTokenBucket(cfg, rdb))
	for i := 0; i < 3; i++ {
		if rec := do(e, http.MethodGet, "/x", nil); rec.Code != http.StatusOK {
			t.Fatalf("status %d with redis down", rec.Code)
		}
	}
}

func TestStrategyParts(t *testing.T) {
	cases := map[string][]string{
		"ip":          {"ip"},
		"staff_route": {"staff", "route"},
		"IP_Route":    {"ip", "route"},
		"bogus":       {"ip", "staff", "route"},
	}
	for in, want := range cases {
		got := strategyParts(in)
		if len(got) != len(want) {
			t.Fatalf("%s: %v", in, got)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("%s: %v", in, got)
			}
		}
	}
}

func TestRedisCacheHitAndMiss(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.CacheConfig{
		Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute,
		KeyStrategy: "route_query", Prefix: "test", MaxBodyBytes: 1024,
	}
	calls := 0
	e := echo.New()
	e.GET("/restaurants/:id", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "calls": calls})
	}, NewRedisCache(cfg, rdb))

	first := do(e, http.MethodGet, "/restaurants/1", nil)
	if first.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("first X-Cache = %q", first.Header().Get("X-Cache"))
	}
	second := do(e, http.MethodGet, "/restaurants/1", nil)
	if second.Header().Get("X-Cache") != "HIT" || second.Body.String() != first.Body.String() {
		t.Fatalf("second = %q %q", second.Header().Get("X-Cache"), second.Body.String())
	}
	if second.Header().Get(echo.HeaderContentType) != first.Header().Get(echo.HeaderContentType) {
		t.Fatal("content type not restored")
	}
	other := do(e, http.MethodGet, "/restaurants/2", nil)
	if other.Header().Get("X-Cache") != "MISS" {
		t.Fatal("path params must be part of the key")
	}
	if calls != 2 {
		t.Fatalf("handler ran %d times", calls)
	}
}

func TestRedisCacheSkipsErrorsAndLargeBodies(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute, Prefix: "test", MaxBodyBytes: 8}
	e := echo.New()
	e.GET("/missing", func(c echo.Context) error { return c.JSON(http.StatusNotFound, echo.Map{"error": "nope"}) }, NewRedisCache(cfg, rdb))
	e.GET("/big", func(c echo.Context) error { return c.String(http.StatusOK, "0123456789abcdef") }, NewRedisCache(cfg, rdb))

	for _, p := range []string{"/missing", "/big"} {
		do(e, http.MethodGet, p, nil)
		if rec := do(e, http.MethodGet, p, nil); rec.Header().Get("X-Cache") != "MISS" {
			t.Fatalf("%s was cached", p)
		}
	}
}

func TestJWTAuthAndRole(t *testing.T) {
	const secret = "test-secret"
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		id, _ := StaffID(c)
		role, _ := Role(c)
		return c.JSON(http.StatusOK, echo.Map{"id": id, "role": role})
	}, JWTAuth(secret), RequireRole("MANAGER"))

	if rec := do(e, http.MethodGet, "/me", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer junk"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("junk token: %d", rec.Code)
	}

	staff, _ := utils.NewAccessToken(secret, 3, "STAFF", 5)
	if rec := do(e, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + staff.Token}); rec.Code != http.StatusForbidden {
		t.Fatalf("wrong role: %d", rec.Code)
	}

	mgr, _ := utils.NewAccessToken(secret, 4, "MANAGER", 5)
	rec := do(e, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + mgr.Token})
	if rec.Code != http.StatusOK {
		t.Fatalf("manager: %d", rec.Code)
	}
	if want := `{"id":4,"role":"MANAGER"}` + "\n"; rec.Body.String() != want {
		t.Fatalf("body = %q", rec.Body.String())
	}
}
