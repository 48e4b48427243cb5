// Package cache provides Redis caching utilities for the application.
package cache

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

// Cache wraps a Redis client. A nil *Cache or a Cache whose connection
// failed degrades every operation to a no-op so the API keeps working
// without Redis.
type Cache struct {
	client *redis.Client
}

// New connects to Redis at addr (either host:port or a redis:// URL) and
// returns a Cache. Connection failures are logged and produce a disabled
// cache instead of an error.
func New(addr string) *Cache {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			log.Printf("Redis connection warning: invalid REDIS_URL %q: %v (continuing without cache)", addr, err)
			return &Cache{}
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without cache)", err)
		return &Cache{}
	}

	log.Println("Redis connected successfully")
	return &Cache{client: client}
}

// Available reports whether a live Redis connection is backing this cache.
func (c *Cache) Available() bool {
	return c != nil && c.client != nil
}

// Ping checks the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	if !c.Available() {
		return redis.ErrClosed
	}
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying Redis connection.
func (c *Cache) Close() {
	if c.Available() {
		if err := c.client.Close(); err != nil {
			log.Printf("Error closing Redis: %v", err)
		}
	}
}

// Get attempts to fetch the key and unmarshal the stored document into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if !c.Available() {
		return false, nil
	}
	b, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	// Documents are cached in BSON: the JSON rendering of a thought
	// formats timestamps for display and does not round-trip.
	if err := bson.Unmarshal(b, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set marshals v as BSON and stores it under key with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	if !c.Available() {
		return nil
	}
	b, err := bson.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, b, ttl).Err()
}

// Aside tries the cache first, on miss it calls fetch (which must populate
// dest), then stores the result with ttl. Cache writes are best-effort.
func (c *Cache) Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := c.Get(ctx, key, dest)
	if err == nil && found {
		return nil
	}

	// Fetch from the store; a broken cache read falls through to here too.
	if err := fetch(); err != nil {
		return err
	}

	_ = c.Set(ctx, key, dest, ttl)
	return nil
}

// Invalidate drops the given key.
func (c *Cache) Invalidate(ctx context.Context, key string) {
	if c.Available() {
		c.client.Del(ctx, key)
	}
}
