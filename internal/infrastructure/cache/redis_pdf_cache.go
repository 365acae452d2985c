package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPDFCache implements PDFCache using Redis
// This is suitable for distributed deployments where multiple instances
// serve downloads of the same rendered documents
type RedisPDFCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisPDFCache creates a new Redis-based PDF cache
func NewRedisPDFCache(cfg RedisConfig) (*RedisPDFCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisPDFCache{
		client:    client,
		keyPrefix: "render:pdf:",
	}, nil
}

// NewRedisPDFCacheWithClient creates a cache with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisPDFCacheWithClient(client *redis.Client, keyPrefix string) *RedisPDFCache {
	if keyPrefix == "" {
		keyPrefix = "render:pdf:"
	}
	return &RedisPDFCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the cached PDF bytes for a key, or false when absent
func (c *RedisPDFCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached PDF: %w", err)
	}
	return data, true, nil
}

// Set stores the PDF bytes under a key with a TTL
func (c *RedisPDFCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache PDF: %w", err)
	}
	return nil
}

// Invalidate removes a cached entry
func (c *RedisPDFCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached PDF: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisPDFCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisPDFCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisPDFCache implements PDFCache
var _ PDFCache = (*RedisPDFCache)(nil)
