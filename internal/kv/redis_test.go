package kv

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func newTestRedis(t *testing.T, quota int64) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	s, err := NewRedisStore(context.Background(), RedisOptions{Addr: mr.Addr(), Prefix: "streamcard:", Quota: quota})
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStore_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestRedis(t, 0)

	if _, err := s.Get(ctx, "theme"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing = %v, want ErrNotFound", err)
	}
	if err := s.Set(ctx, "theme", []byte(`{"themeId":"default"}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	raw, err := mr.Get("streamcard:theme")
	if err != nil || raw != `{"themeId":"default"}` {
		t.Fatalf("stored value = %q (%v), want prefixed key", raw, err)
	}
	got, err := s.Get(ctx, "theme")
	if err != nil || !bytes.Equal(got, []byte(raw)) {
		t.Fatalf("Get = %q, %v", got, err)
	}
	if err := s.Remove(ctx, "theme"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if mr.Exists("streamcard:theme") {
		t.Fatal("key still present after Remove")
	}
}

func TestRedisStore_QuotaCheckedBeforeWrite(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestRedis(t, 16)

	err := s.Set(ctx, "big", bytes.Repeat([]byte("x"), 32))
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("Set = %v, want ErrQuotaExceeded", err)
	}
	if mr.Exists("streamcard:big") {
		t.Fatal("oversized value reached redis")
	}
}

func TestRedisStore_ServerDown(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestRedis(t, 0)
	mr.Close()

	if _, err := s.Get(ctx, "k"); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("Get with server down = %v, want connection error", err)
	}
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	mr, _ := miniredis.Run()
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStore(context.Background(), RedisOptions{Addr: addr})
	if err == nil {
		t.Fatal("NewRedisStore should fail when ping fails")
	}
}

