package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shrimpsizemoose/semla/internal/models"
	"github.com/shrimpsizemoose/semla/internal/store"
)

// RedisStore keeps the three collections under their value names as
// plain keys. Persist goes through one MULTI/EXEC pipeline so a partial
// write is never visible to a later Load.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(url string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

func (s *RedisStore) Load() (*models.Snapshot, error) {
	ctx := context.Background()

	values, err := s.client.MGet(ctx, store.CollectionKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot keys: %w", err)
	}

	snap := &models.Snapshot{}
	found := false
	for i, name := range store.CollectionKeys {
		raw, ok := values[i].(string)
		if !ok {
			continue
		}
		found = true
		if err := store.DecodeCollection(snap, name, []byte(raw)); err != nil {
			return nil, err
		}
	}
	if !found {
		return nil, nil
	}

	return snap, nil
}

func (s *RedisStore) Persist(snap *models.Snapshot) error {
	values, err := store.EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	ctx := context.Background()
	pipe := s.client.TxPipeline()
	for _, name := range store.CollectionKeys {
		pipe.Set(ctx, name, values[name], 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	return nil
}
