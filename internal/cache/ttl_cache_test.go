package cache

import (
	"testing"
	"time"
)

func TestTTLCacheRoundTrip(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("logo", 42, time.Minute)

	got, ok := c.Get("logo")
	if !ok || got != 42 {
		t.Fatalf("expected hit with 42, got %d ok=%v", got, ok)
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("logo", 42, time.Nanosecond)
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("logo"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("logo", 7, 0)

	if _, ok := c.Get("logo"); !ok {
		t.Fatal("expected entry with zero ttl to stay")
	}
}

func TestTTLCacheSweepDropsExpired(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("stale", 1, time.Nanosecond)
	time.Sleep(5 * time.Millisecond)

	for i := 0; i < sweepEvery; i++ {
		c.Set("live", i, time.Minute)
	}

	c.mu.RLock()
	_, ok := c.items["stale"]
	c.mu.RUnlock()
	if ok {
		t.Fatal("expected sweep to drop expired entry")
	}
}

func TestNoopCacheAlwaysMisses(t *testing.T) {
	var c NoopCache[string, int]
	c.Set("logo", 1, time.Minute)
	if _, ok := c.Get("logo"); ok {
		t.Fatal("expected noop cache to miss")
	}
}
