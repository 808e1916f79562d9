package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shrutis65143/Booqly/internal/config"
)

func TestEncodeDecodePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"success":true,"data":[]}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsTruncatedData(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{0, 0, 0})
	assert.False(t, ok)

	// Header length pointing past the end of the buffer.
	payload, err := encodePayload(200, http.Header{"A": {"b"}}, []byte("x"))
	require.NoError(t, err)
	_, _, _, ok = decodePayload(payload[:9])
	assert.False(t, ok)
}

func newCacheCtx(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/books")
	return c
}

func TestCacheKeyVariesWithQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "booqly:cache", KeyStrategy: "route_query"}

	a := cacheKeyFrom(cfg, newCacheCtx(t, "/api/books?search=go"))
	b := cacheKeyFrom(cfg, newCacheCtx(t, "/api/books?search=rust"))
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "booqly:cache:")
}

func TestCacheKeyRouteStrategyIgnoresQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "booqly:cache", KeyStrategy: "route"}

	a := cacheKeyFrom(cfg, newCacheCtx(t, "/api/books?search=go"))
	b := cacheKeyFrom(cfg, newCacheCtx(t, "/api/books?search=rust"))
	assert.Equal(t, a, b)
}

func TestNewRedisCacheWithoutClientIsPassThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: true}, nil)

	called := false
	h := mw(func(c echo.Context) error { called = true; return nil })
	require.NoError(t, h(newCacheCtx(t, "/api/books")))
	assert.True(t, called)
}

func TestBuildRateKeyStrategies(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "booqly:rl", KeyStrategy: "ip_user_route"}
	c := newCacheCtx(t, "/api/books")
	c.Set("user_id", float64(7))

	key := buildRateKey(cfg, c)
	assert.Contains(t, key, "booqly:rl:")
	assert.Contains(t, key, "user:7")
	assert.Contains(t, key, "GET /api/books")

	cfg.KeyStrategy = "ip"
	assert.NotContains(t, buildRateKey(cfg, c), "user:7")
}

func TestCurrentUserIDFallsBackToAnon(t *testing.T) {
	c := newCacheCtx(t, "/api/books")
	assert.Equal(t, "anon", currentUserID(c))
}
