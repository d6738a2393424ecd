package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the connection settings for the Redis backend.
type RedisConfig struct {
	ConnectionURL  string        `env:"PACS_REDIS_URL"`
	RetryAttempts  int           `env:"PACS_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"PACS_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"PACS_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	OpTimeout      time.Duration `env:"PACS_REDIS_OP_TIMEOUT" envDefault:"2s"`
}

// ConnectRedis parses the URL, dials and pings until the server answers or
// the attempts are exhausted.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (redis.UniversalClient, error) {
	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client := redis.NewClient(opt)

	var pingErr error
	for i := range attempts {
		if pingErr = client.Ping(ctx).Err(); pingErr == nil {
			return client, nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	_ = client.Close()
	return nil, errors.Join(ErrRedisNotReady, pingErr)
}

// RedisHealthcheck returns a probe suitable for readiness checks.
func RedisHealthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return errors.Join(ErrHealthcheckFailed, ErrRedisNotReady)
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Redis implements Adapter on a go-redis client. Values never expire.
type Redis struct {
	client redis.UniversalClient
	opts   *options
}

// NewRedis wraps an existing client. Panics if client is nil.
func NewRedis(client redis.UniversalClient, opts ...Option) *Redis {
	if client == nil {
		panic("storage: redis client is required")
	}
	return &Redis{client: client, opts: newOptions(opts)}
}

func (r *Redis) Read(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), r.opts.timeout)
	defer cancel()

	v, err := r.client.Get(ctx, namespaced(r.opts.namespace, key)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.warn("read", key, err)
		}
		return "", false
	}
	return v, true
}

func (r *Redis) Write(key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), r.opts.timeout)
	defer cancel()

	if err := r.client.Set(ctx, namespaced(r.opts.namespace, key), value, 0).Err(); err != nil {
		r.warn("write", key, err)
	}
}

func (r *Redis) Remove(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), r.opts.timeout)
	defer cancel()

	if err := r.client.Del(ctx, namespaced(r.opts.namespace, key)).Err(); err != nil {
		r.warn("remove", key, err)
	}
}

func (r *Redis) warn(op, key string, err error) {
	r.opts.logger.Warn(fmt.Sprintf("storage redis %s failed", op),
		slog.String("key", key),
		slog.String("error", err.Error()))
}
