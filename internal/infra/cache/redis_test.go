package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client), server
}

func TestIncrementFixedWindow(t *testing.T) {
	r, server := newTestRedis(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := r.Increment(ctx, "rl:webhook:10.0.0.1", time.Minute)
		if err != nil {
			t.Fatalf("Increment() error = %v", err)
		}
		if got != want {
			t.Fatalf("Increment() = %d, want %d", got, want)
		}
	}

	if ttl := server.TTL("rl:webhook:10.0.0.1"); ttl != time.Minute {
		t.Errorf("ttl = %v, want 1m", ttl)
	}

	server.FastForward(61 * time.Second)

	got, err := r.Increment(ctx, "rl:webhook:10.0.0.1", time.Minute)
	if err != nil {
		t.Fatalf("Increment() error = %v", err)
	}
	if got != 1 {
		t.Errorf("Increment() after window = %d, want 1", got)
	}
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestRedis(t)
	if !r.HealthCheck() {
		t.Fatal("HealthCheck() = false with a running server")
	}
}
