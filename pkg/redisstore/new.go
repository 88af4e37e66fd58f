package redisstore

import (
	"context"
	"fmt"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"
)

// DefaultPrefix is used for keys and channels unless WithPrefix is given.
const DefaultPrefix = "zoofs:"

type StoreOption func(s *RedisStore)

func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *RedisStore) {
		s.Logger = logger
	}
}

// WithPrefix sets the prefix for all keys and channels, allowing multiple
// independent trees in one Redis database.
func WithPrefix(prefix string) StoreOption {
	return func(s *RedisStore) {
		s.Prefix = prefix
	}
}

// NewFromClient creates a store on an existing client and makes sure the
// root node exists.
func NewFromClient(ctx context.Context, client redis.UniversalClient, storeOptions ...StoreOption) (*RedisStore, error) {
	rs := redsync.New(goredis.NewPool(client))

	store := &RedisStore{
		Client:      client,
		Prefix:      DefaultPrefix,
		CreateMutex: newMutex(rs),
	}
	for _, option := range storeOptions {
		option(store)
	}
	//defaults
	if store.Logger == nil {
		store.Logger = slog.Default()
	}

	if err := client.SetNX(ctx, store.dataKey("/"), "", 0).Err(); err != nil {
		return nil, fmt.Errorf("redisstore: unable to create root node: %w", err)
	}

	return store, nil
}

// New connects to the Redis server at uri, e.g. "redis://localhost:6379/0".
func New(ctx context.Context, uri string, storeOptions ...StoreOption) (*RedisStore, error) {
	connection, err := redis.ParseURL(uri)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(connection)
	if res := client.Ping(ctx); res.Err() != nil {
		client.Close()
		return nil, res.Err()
	}
	return NewFromClient(ctx, client, storeOptions...)
}
