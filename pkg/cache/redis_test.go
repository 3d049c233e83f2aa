package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// Set MAZEGEN_TEST_REDIS to a Redis address (e.g. localhost:6379) to run.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("MAZEGEN_TEST_REDIS")
	if addr == "" {
		t.Skip("MAZEGEN_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, addr, "mazegen-test:"+t.Name()+":")
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	defer c.Clear(ctx)

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("fresh Get = hit %v err %v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get = %q hit %v err %v", data, hit, err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Clear")
	}
}
