package storage

import (
	"context"
	"fmt"
	"time"
)

// Supported values for Config.Driver.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config selects and configures a backend.
type Config struct {
	Driver    string `env:"PACS_STORAGE_DRIVER" envDefault:"file"`
	FilePath  string `env:"PACS_STORAGE_FILE"`
	Namespace string `env:"PACS_STORAGE_NAMESPACE" envDefault:"wizard"`

	Redis    RedisConfig
	Postgres PostgresConfig
}

// Open builds the backend selected by cfg.Driver. The returned func releases
// any connection the backend owns and is never nil.
func Open(ctx context.Context, cfg Config, opts ...Option) (Adapter, func(), error) {
	noop := func() {}
	opts = append([]Option{WithNamespace(cfg.Namespace)}, opts...)

	switch cfg.Driver {
	case DriverMemory:
		return NewMemory(), noop, nil

	case DriverFile, "":
		f, err := NewFile(cfg.FilePath, opts...)
		if err != nil {
			return nil, noop, err
		}
		return f, noop, nil

	case DriverRedis:
		client, err := ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		adapter := NewRedis(client, append(opts, WithOpTimeout(cfg.Redis.OpTimeout))...)
		return adapter, func() { _ = client.Close() }, nil

	case DriverPostgres:
		pool, err := ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, noop, err
		}
		adapter := NewPostgres(pool, append(opts, WithOpTimeout(cfg.Postgres.OpTimeout))...)
		if !cfg.Postgres.SkipSchemaInit {
			schemaCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			if err := adapter.EnsureSchema(schemaCtx); err != nil {
				pool.Close()
				return nil, noop, err
			}
		}
		return adapter, pool.Close, nil
	}

	return nil, noop, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}
