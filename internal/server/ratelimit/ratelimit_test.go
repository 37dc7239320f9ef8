package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var epoch = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(cfg *Config) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: epoch}
	l := NewLimiter(cfg)
	l.now = clock.Now
	return l, clock
}

func TestTokenBucket_Take(t *testing.T) {
	bucket := newTokenBucket(10, 1.0, epoch)

	for i := 0; i < 10; i++ {
		allowed, remaining, _, _ := bucket.take(epoch)
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 9-i, remaining)
	}

	allowed, _, reset, retry := bucket.take(epoch)
	assert.False(t, allowed)
	assert.Equal(t, epoch.Add(10*time.Second), reset)
	assert.Equal(t, time.Second, retry)
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := newTokenBucket(10, 1.0, epoch)
	for i := 0; i < 10; i++ {
		bucket.take(epoch)
	}

	later := epoch.Add(1100 * time.Millisecond)
	allowed, _, _, _ := bucket.take(later)
	assert.True(t, allowed)

	allowed, _, _, _ = bucket.take(later)
	assert.False(t, allowed)

	allowed, remaining, _, _ := bucket.take(epoch.Add(time.Hour))
	assert.True(t, allowed)
	assert.Equal(t, 9, remaining, "refill is capped at capacity")
}

func TestLimiter_Allow(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("127.0.0.1", "/api/customers", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/api/customers", "GET")
	assert.False(t, allowed)
	assert.Zero(t, info.Remaining)
	assert.Equal(t, 6*time.Second, info.RetryAfter)
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"10.0.0.2": true},
	})
	defer l.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/api/history", "GET")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("10.0.0.2", "/api/history", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: false, DefaultLimit: 1})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("127.0.0.1", "/api/generate", "POST")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	l, clock := newTestLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("127.0.0.1", "/api/generate", "POST")
		require.True(t, allowed)
		assert.Equal(t, 30, info.Limit)
	}
	allowed, _ := l.Allow("127.0.0.1", "/api/generate", "POST")
	assert.False(t, allowed, "burst of 5 is exhausted")

	clock.Advance(2 * time.Second)
	allowed, _ = l.Allow("127.0.0.1", "/api/generate", "POST")
	assert.True(t, allowed, "one token refills every 2s")

	allowed, info := l.Allow("127.0.0.1", "/api/customers", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)

	allowed, info = l.Allow("127.0.0.1", "/health", "GET")
	assert.True(t, allowed)
	assert.Zero(t, info.Limit)
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Minute})
	defer l.Stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("127.0.0.1", "/api/history", "GET"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowed)
}

func TestLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		l.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/api/history", "GET")
	}
	require.Equal(t, 10, l.Len())

	clock.Advance(staleAfter - time.Minute)
	for i := 0; i < 5; i++ {
		l.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/api/history", "GET")
	}

	clock.Advance(2 * time.Minute)
	l.Cleanup()
	assert.Equal(t, 5, l.Len())
}

func TestLimiter_StopEndsCleanupLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: time.Millisecond})
	time.Sleep(5 * time.Millisecond)
	l.Stop()
	l.Stop()
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l, _ := newTestLimiter(nil)
	defer l.Stop()

	allowed, info := l.Allow("127.0.0.1", "/api/history", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 600, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api/", Method: "GET", Limit: 1},
		{Path: "/api/download/", Method: "GET", Limit: 2},
		{Path: "/api/generate", Method: "POST", Limit: 3},
	}

	tests := []struct {
		name   string
		path   string
		method string
		limit  int
		isNil  bool
	}{
		{name: "exact", path: "/api/generate", method: "POST", limit: 3},
		{name: "longest prefix", path: "/api/download/a.docx", method: "GET", limit: 2},
		{name: "short prefix", path: "/api/history", method: "GET", limit: 1},
		{name: "method mismatch", path: "/api/generate", method: "GET", limit: 1},
		{name: "no match", path: "/other", method: "GET", isNil: true},
		{name: "health", path: "/health", method: "GET", limit: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.isNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.limit, got.Limit)
		})
	}
}

func TestLoadConfigFrom(t *testing.T) {
	env := map[string]string{
		"PROTOCOL_RATE_LIMIT_DEFAULT_LIMIT":  "50",
		"PROTOCOL_RATE_LIMIT_DEFAULT_WINDOW": "30s",
		"PROTOCOL_RATE_LIMIT_WHITELIST":      "127.0.0.1, 10.0.0.1",
		"PROTOCOL_RATE_LIMIT_GENERATE_LIMIT": "7",
	}
	cfg := LoadConfigFrom(func(k string) string { return env[k] })

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 50, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.Equal(t, map[string]bool{"127.0.0.1": true, "10.0.0.1": true}, cfg.Whitelist)
	assert.Equal(t, 7, MatchEndpoint("/api/generate", "POST", cfg.EndpointConfigs).Limit)

	disabled := LoadConfigFrom(func(k string) string {
		if k == EnvPrefix+"ENABLED" {
			return "false"
		}
		return ""
	})
	assert.False(t, disabled.Enabled)
}
