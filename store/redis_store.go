package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps preferences in Redis without expiry. Useful when several
// dashboard instances should share one settings profile.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

// RedisStoreConfig carries connection parameters for the Redis backend.
type RedisStoreConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(config *RedisStoreConfig) (*RedisStore, error) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	slog.Info("Redis preference store connected", "addr", config.Addr)

	return &RedisStore{
		client: client,
		ctx:    ctx,
	}, nil
}

func (r *RedisStore) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Error("Redis get error", "error", err, "key", key)
		}
		return "", false
	}
	return val, true
}

func (r *RedisStore) Set(key, value string) error {
	// Preferences never expire; 0 disables the TTL.
	return r.client.Set(r.ctx, key, value, 0).Err()
}

// Close releases the underlying Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
