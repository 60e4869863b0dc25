package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/sarthi-tvs/callagent/internal/models"
)

const redisKeyPrefix = "ttscache:"

// RedisStore keeps artifacts in Redis so several agent instances can share
// one cache. Values are the raw audio bytes, stored without TTL.
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Exists(ctx context.Context, filename string) (string, bool) {
	n, err := s.client.Exists(ctx, redisKeyPrefix+filename).Result()
	if err != nil || n == 0 {
		return "", false
	}
	return publicRef(filename), true
}

func (s *RedisStore) Put(ctx context.Context, filename string, data []byte) (string, error) {
	if err := s.client.Set(ctx, redisKeyPrefix+filename, data, 0).Err(); err != nil {
		return "", fmt.Errorf("failed to store audio in redis: %w", err)
	}
	return publicRef(filename), nil
}

func (s *RedisStore) Get(ctx context.Context, filename string) ([]byte, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+filename).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("audio file not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read audio from redis: %w", err)
	}
	return data, nil
}

func (s *RedisStore) Clear(ctx context.Context) (int, error) {
	removed := 0
	var cursor uint64

	for {
		keys, next, err := s.client.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			return removed, fmt.Errorf("failed to scan redis cache keys: %w", err)
		}
		if len(keys) > 0 {
			n, err := s.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, fmt.Errorf("failed to delete redis cache keys: %w", err)
			}
			removed += int(n)
		}
		cursor = next
		if cursor == 0 {
			return removed, nil
		}
	}
}

func (s *RedisStore) Info(ctx context.Context) (models.CacheInfo, error) {
	info := models.CacheInfo{Files: []models.CacheFile{}}
	var cursor uint64

	for {
		keys, next, err := s.client.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			return info, fmt.Errorf("failed to scan redis cache keys: %w", err)
		}
		for _, key := range keys {
			size, err := s.client.StrLen(ctx, key).Result()
			if err != nil {
				continue
			}
			info.Files = append(info.Files, models.CacheFile{
				Name: strings.TrimPrefix(key, redisKeyPrefix),
				Size: size,
			})
			info.TotalSize += size
			info.Count++
		}
		cursor = next
		if cursor == 0 {
			return info, nil
		}
	}
}
