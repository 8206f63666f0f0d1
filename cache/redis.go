package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"inkwell-cms/config"
)

const previewKeyPrefix = "preview:"

// NewRedisClient connects and pings within five seconds.
func NewRedisClient(cfg config.RedisConfig, logger *slog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}

	logger.Info("redis connected", "addr", cfg.Addr)
	return client, nil
}

type redisPreviewStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisPreviewStore(client redis.Cmdable, ttl time.Duration) PreviewStore {
	return &redisPreviewStore{client: client, ttl: ttl}
}

func (s *redisPreviewStore) Put(ctx context.Context, id string, p Preview) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return s.client.Set(ctx, previewKeyPrefix+id, data, s.ttl).Err()
}

func (s *redisPreviewStore) Get(ctx context.Context, id string) (*Preview, error) {
	data, err := s.client.Get(ctx, previewKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errPreviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load preview: %w", err)
	}

	var p Preview
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode preview: %w", err)
	}
	return &p, nil
}

func (s *redisPreviewStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, previewKeyPrefix+id).Err()
}
