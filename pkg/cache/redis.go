package cache

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	errs "github.com/matzehuels/mazegen/pkg/errors"
)

// RedisCache stores entries in Redis under a common key prefix. Expiry is
// delegated to Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to addr and pings it. Keys are stored as
// prefix+key.
func NewRedisCache(ctx context.Context, addr, prefix string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "connect to redis at %s", addr)
	}
	return NewRedisCacheFromClient(client, prefix), nil
}

// NewRedisCacheFromClient wraps an existing client. Close closes the client.
func NewRedisCacheFromClient(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Get retrieves a value. redis.Nil is a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		v, err := c.client.Get(ctx, c.prefix+key).Bytes()
		data = v
		return classify(err)
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrap(errs.ErrCodeNetwork, err, "redis get")
	}
	return data, true, nil
}

// Set stores a value. A ttl of zero never expires.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := RetryWithBackoff(ctx, func() error {
		return classify(c.client.Set(ctx, c.prefix+key, data, ttl).Err())
	})
	if err != nil {
		return errs.Wrap(errs.ErrCodeNetwork, err, "redis set")
	}
	return nil
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return errs.Wrap(errs.ErrCodeNetwork, err, "redis del")
	}
	return nil
}

// Clear deletes every key under the prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return errs.Wrap(errs.ErrCodeNetwork, err, "redis del")
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return errs.Wrap(errs.ErrCodeNetwork, err, "redis scan")
	}
	if len(batch) > 0 {
		if err := c.client.Del(ctx, batch...).Err(); err != nil {
			return errs.Wrap(errs.ErrCodeNetwork, err, "redis del")
		}
	}
	return nil
}

// Close closes the client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// classify marks transient network failures as retryable.
func classify(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Retryable(err)
	}
	return err
}

var _ Cache = (*RedisCache)(nil)
