package photo

import (
	"context"

	"github.com/kapu/busan-tour-bot-go/internal/constants"
	"github.com/kapu/busan-tour-bot-go/internal/service/cache"
)

// RedisURLStore shares resolved URLs between bot replicas. Keys never expire.
type RedisURLStore struct {
	cache  *cache.CacheService
	prefix string
}

func NewRedisURLStore(c *cache.CacheService) *RedisURLStore {
	return &RedisURLStore{cache: c, prefix: constants.CacheKeys.PhotoURLPrefix}
}

func (s *RedisURLStore) key(name string) string {
	return s.prefix + name
}

func (s *RedisURLStore) Get(ctx context.Context, name string) (string, bool, error) {
	var url string
	found, err := s.cache.Get(ctx, s.key(name), &url)
	if err != nil || !found {
		return "", false, err
	}
	return url, true, nil
}

func (s *RedisURLStore) SetIfAbsent(ctx context.Context, name, url string) (string, error) {
	stored, err := s.cache.SetNX(ctx, s.key(name), url, 0)
	if err != nil {
		return "", err
	}
	if stored {
		return url, nil
	}

	existing, found, err := s.Get(ctx, name)
	if err != nil {
		return "", err
	}
	if !found {
		return url, nil
	}
	return existing, nil
}
