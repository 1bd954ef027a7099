package cursor

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "chatsync:lastRecordId"

// RedisStore keeps the cursor in a single redis key, for deployments where
// the service runs on more than one host.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = defaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Save(ctx context.Context, recordID string) error {
	return s.client.Set(ctx, s.key, recordID, 0).Err()
}
