package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Bateyjosue/e-commerce-platform-backend/internal/core/domain"
)

const productKeyPrefix = "products:"

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

// GetProductPage returns nil on a cache miss.
func (r *RedisAdapter) GetProductPage(ctx context.Context, key string) (*domain.ProductPage, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var page domain.ProductPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decode cached product page: %w", err)
	}
	return &page, nil
}

func (r *RedisAdapter) SetProductPage(ctx context.Context, key string, page *domain.ProductPage, ttl time.Duration) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode product page: %w", err)
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

// FlushProducts deletes every listing key. Only keys under the products
// prefix are touched, so unrelated cache users are unaffected.
func (r *RedisAdapter) FlushProducts(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, productKeyPrefix+"*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
