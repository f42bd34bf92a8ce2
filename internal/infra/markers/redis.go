package markers

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore хранит отметки в Redis с TTL
// Ключи в Redis имеют вид <prefix>:<key>
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore создает хранилище отметок поверх Redis
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *RedisStore) namespaceKey(key string) string {
	return s.prefix + ":" + key
}

func (s *RedisStore) stripNamespace(fullKey string) string {
	return strings.TrimPrefix(fullKey, s.prefix+":")
}

// Exists проверяет наличие отметки
func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.namespaceKey(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Set ставит отметку
func (s *RedisStore) Set(ctx context.Context, key string) error {
	return s.client.Set(ctx, s.namespaceKey(key), "1", s.ttl).Err()
}

// Delete удаляет отметку
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.namespaceKey(key)).Err()
}

// Keys возвращает все ключи с префиксом (без namespace)
func (s *RedisStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	pattern := s.namespaceKey(prefix) + "*"

	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, s.stripNamespace(iter.Val()))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}
