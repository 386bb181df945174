package cache

import (
	"context"
	"fmt"
	"time"

	"shop-service/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisClient struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisClient(addr, password string, db int, log *zap.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Redis подключён", zap.String("addr", addr))

	return &RedisClient{
		client: rdb,
		log:    log,
	}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func productKey(kind models.ProductKind, slug string) string {
	return fmt.Sprintf("product:%s:%s", kind, slug)
}

// Кэш карточек товара — храним уже сериализованную проекцию.
func (r *RedisClient) GetProduct(ctx context.Context, kind models.ProductKind, slug string) ([]byte, error) {
	return r.client.Get(ctx, productKey(kind, slug)).Bytes()
}

func (r *RedisClient) SetProduct(ctx context.Context, kind models.ProductKind, slug string, data []byte, ttl time.Duration) error {
	return r.client.Set(ctx, productKey(kind, slug), data, ttl).Err()
}

func (r *RedisClient) InvalidateProduct(ctx context.Context, kind models.ProductKind, slug string) error {
	return r.client.Del(ctx, productKey(kind, slug)).Err()
}
