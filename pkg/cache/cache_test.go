package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("empty cache should miss")
	}
	if err := c.Set(ctx, "k", []byte{3, 1, 0x45, 0x10}, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v err %v", hit, err)
	}
	if string(data) != "\x03\x01\x45\x10" {
		t.Errorf("Get = %x", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted entry should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero ttl should not expire")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, hit, _ := c.Get(ctx, k); hit {
			t.Errorf("%s survived Clear", k)
		}
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	base := MazeKeyOpts{Width: 10, Height: 10, Seed: 42, Format: "current"}
	if k.MazeKey(base) != k.MazeKey(base) {
		t.Error("MazeKey should be deterministic")
	}
	if !strings.HasPrefix(k.MazeKey(base), "maze:") {
		t.Errorf("MazeKey prefix: %s", k.MazeKey(base))
	}

	variants := []MazeKeyOpts{
		{Width: 11, Height: 10, Seed: 42, Format: "current"},
		{Width: 10, Height: 10, Seed: 43, Format: "current"},
		{Width: 10, Height: 10, StartX: 1, Seed: 42, Format: "current"},
		{Width: 10, Height: 10, Seed: 42, Format: "legacy"},
	}
	for _, v := range variants {
		if k.MazeKey(v) == k.MazeKey(base) {
			t.Errorf("MazeKey(%+v) collides with base", v)
		}
	}

	rk1 := k.RenderKey("hash123", RenderKeyOpts{Kind: "svg"})
	rk2 := k.RenderKey("hash123", RenderKeyOpts{Kind: "svg", Solve: true})
	if rk1 == rk2 {
		t.Error("Different RenderKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "staging:")

	opts := MazeKeyOpts{Width: 3, Height: 3}
	if got, want := scoped.MazeKey(opts), "staging:"+inner.MazeKey(opts); got != want {
		t.Errorf("MazeKey = %s, want %s", got, want)
	}
	if !strings.HasPrefix(scoped.RenderKey("h", RenderKeyOpts{}), "staging:render:") {
		t.Error("RenderKey should be prefixed")
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	if !strings.HasPrefix(scoped.MazeKey(MazeKeyOpts{}), "prefix:maze:") {
		t.Errorf("Unexpected key with nil inner: %s", scoped.MazeKey(MazeKeyOpts{}))
	}
}

var errFlaky = errors.New("flaky")

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(errFlaky)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != errFlaky.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if !errors.Is(err, errFlaky) {
		t.Error("Unwrap should expose the cause")
	}
	if IsRetryable(errFlaky) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	retryBaseDelay = time.Millisecond
	defer func() { retryBaseDelay = 100 * time.Millisecond }()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("success: err %v calls %d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return errFlaky
	})
	if err != errFlaky || calls != 1 {
		t.Errorf("non-retryable: err %v calls %d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errFlaky)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry: err %v calls %d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(errFlaky)
	})
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("exhausted: err %v calls %d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errFlaky)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
