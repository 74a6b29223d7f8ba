package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"shipfee/internal/service/shipping/domain"
)

const quoteKeyPrefix = "shipfee:quote:"

// NewRedisClient 创建 redis 客户端并检查连通性
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "ping redis %s", addr)
	}
	return client, nil
}

// RedisQuoteCache 是 application.QuoteCache 的 redis 实现
type RedisQuoteCache struct {
	client redis.Cmdable
}

// NewRedisQuoteCache 创建报价缓存
func NewRedisQuoteCache(client redis.Cmdable) *RedisQuoteCache {
	return &RedisQuoteCache{client: client}
}

// Get 未命中时返回 (nil, nil)
func (c *RedisQuoteCache) Get(ctx context.Context, key string) (*domain.ShippingSummary, error) {
	data, err := c.client.Get(ctx, quoteKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "redis get quote")
	}

	var summary domain.ShippingSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, errors.Wrap(err, "decode cached quote")
	}
	return &summary, nil
}

// Set 写入缓存，ttl 为 0 时不写
func (c *RedisQuoteCache) Set(ctx context.Context, key string, summary *domain.ShippingSummary, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return errors.Wrap(err, "encode quote")
	}
	return errors.Wrap(c.client.Set(ctx, quoteKey(key), data, ttl).Err(), "redis set quote")
}

func quoteKey(key string) string {
	return quoteKeyPrefix + key
}
