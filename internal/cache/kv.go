package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss - ключа нет в кэше
var ErrCacheMiss = errors.New("cache miss")

// KVStore - минимальный key-value интерфейс для кэша отчётов
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
}

// redisCmds - подмножество команд *redis.Client, которое нужно кэшу
type redisCmds interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

type RedisKVStore struct {
	client redisCmds
}

func NewRedisKVStore(client redisCmds) *RedisKVStore {
	return &RedisKVStore{client: client}
}

func (s *RedisKVStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

func (s *RedisKVStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisKVStore) Incr(ctx context.Context, key string) (int64, error) {
	return s.client.Incr(ctx, key).Result()
}

// NopKVStore - кэш выключен: всегда промах, записи игнорируются
type NopKVStore struct{}

func (NopKVStore) Get(context.Context, string) (string, error) {
	return "", ErrCacheMiss
}

func (NopKVStore) Set(context.Context, string, string, time.Duration) error {
	return nil
}

func (NopKVStore) Incr(context.Context, string) (int64, error) {
	return 0, nil
}
