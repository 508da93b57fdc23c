package redis

import (
	"HealGolang/internal/api/emotion"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// IRedis is a token based lease store. A lease can only be refreshed or
// released by the holder of the token returned from Acquire.
type IRedis interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	Refresh(ctx context.Context, key, token string, ttl time.Duration) error
	Release(ctx context.Context, key, token string) error
	Close() error
}

// ErrLeaseLost is returned by Refresh once another holder owns the key.
var ErrLeaseLost = emotion.ErrLeaseLost

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var refreshScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

type Config struct {
	Address  string
	Password string
	DB       int
}

type redisClient struct {
	client *redis.Client
}

func New(cfg Config) IRedis {
	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", cfg.Address))

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func (r *redisClient) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error acquiring lease %s: %v", key, err))
		return "", false, err
	}
	if !ok {
		logrus.Debug(fmt.Sprintf("Lease %s is held elsewhere", key))
		return "", false, nil
	}

	logrus.Debug(fmt.Sprintf("Acquired lease %s for %v", key, ttl))
	return token, true, nil
}

func (r *redisClient) Refresh(ctx context.Context, key, token string, ttl time.Duration) error {
	n, err := refreshScript.Run(ctx, r.client, []string{key}, token, ttl.Milliseconds()).Int()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error refreshing lease %s: %v", key, err))
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrLeaseLost, key)
	}
	return nil
}

func (r *redisClient) Release(ctx context.Context, key, token string) error {
	n, err := releaseScript.Run(ctx, r.client, []string{key}, token).Int()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error releasing lease %s: %v", key, err))
		return err
	}

	if n == 0 {
		logrus.Debug(fmt.Sprintf("Lease %s was not held by this token", key))
		return nil
	}

	logrus.Debug(fmt.Sprintf("Released lease %s", key))
	return nil
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
