package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss for absent key")
	}

	c.Set(ctx, "k", []byte("v"))
	got, ok := c.Get(ctx, "k")
	if !ok {
		t.Fatalf("expected hit after set")
	}
	if string(got) != "v" {
		t.Fatalf("expected %q, got %q", "v", got)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemory(-time.Second) // already expired on write
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"))
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestRedisCache_SetGet(t *testing.T) {
	srv := miniredis.RunT(t)

	c := New("redis://"+srv.Addr(), time.Minute)
	if _, ok := c.(*redisCache); !ok {
		t.Fatalf("expected redis-backed cache for configured URL")
	}

	ctx := context.Background()
	c.Set(ctx, "zone:jacou", []byte(`[{"area":180}]`))
	got, ok := c.Get(ctx, "zone:jacou")
	if !ok {
		t.Fatalf("expected hit after set")
	}
	if string(got) != `[{"area":180}]` {
		t.Fatalf("unexpected payload: %s", got)
	}
}

func TestNew_FallsBackToMemory(t *testing.T) {
	if _, ok := New("", time.Minute).(*Memory); !ok {
		t.Fatalf("expected memory cache when no URL configured")
	}
	if _, ok := New("://not-a-url", time.Minute).(*Memory); !ok {
		t.Fatalf("expected memory cache for malformed URL")
	}
}
