package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// exerciseBackend runs the shared Cache contract against a live backend.
func exerciseBackend(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	key := "statcard:test:" + time.Now().Format(time.RFC3339Nano)
	t.Cleanup(func() { _ = c.Delete(ctx, key) })

	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get(new key) = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "payload" {
		t.Fatalf("Get() = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("deleted key still present")
	}
	if p, ok := c.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			t.Errorf("Ping: %v", err)
		}
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("STATCARD_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("STATCARD_TEST_REDIS_ADDR not set")
	}
	c, err := NewRedisCache(context.Background(), RedisOptions{Addr: addr})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}

func TestMongoCache(t *testing.T) {
	uri := os.Getenv("STATCARD_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("STATCARD_TEST_MONGO_URI not set")
	}
	c, err := NewMongoCache(context.Background(), MongoOptions{URI: uri, Database: "statcard_test"})
	if err != nil {
		t.Fatalf("NewMongoCache: %v", err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}
