package docstore

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps each collection under the key <prefix>:<collection>.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(collection string) string {
	if s.prefix == "" {
		return collection
	}
	return s.prefix + ":" + collection
}

func (s *RedisStore) Read(ctx context.Context, collection string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(collection)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return emptyArray, nil
		}
		return nil, err
	}
	return normalize(data), nil
}

func (s *RedisStore) Write(ctx context.Context, collection string, data []byte) error {
	return s.client.Set(ctx, s.key(collection), data, 0).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
