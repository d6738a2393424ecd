package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig holds the connection settings for the Postgres backend.
type PostgresConfig struct {
	DSN            string        `env:"PACS_POSTGRES_DSN"`
	MaxOpenConns   int32         `env:"PACS_POSTGRES_MAX_OPEN_CONNS" envDefault:"4"`
	RetryAttempts  int           `env:"PACS_POSTGRES_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"PACS_POSTGRES_RETRY_INTERVAL" envDefault:"5s"`
	OpTimeout      time.Duration `env:"PACS_POSTGRES_OP_TIMEOUT" envDefault:"2s"`
	SkipSchemaInit bool          `env:"PACS_POSTGRES_SKIP_SCHEMA" envDefault:"false"`
}

// ConnectPostgres opens a pool and pings it, retrying on failure.
func ConnectPostgres(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	if cfg.DSN == "" {
		return nil, ErrEmptyDSN
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = cfg.MaxOpenConns
	}

	attempts := max(cfg.RetryAttempts, 1)

	var lastErr error
	for i := range attempts {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrFailedToOpenDBConnection, lastErr)
}

// PgxPool is the subset of *pgxpool.Pool used by the Postgres adapter.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	schemaSQL = `CREATE TABLE IF NOT EXISTS adminkit_storage (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	selectSQL = `SELECT value FROM adminkit_storage WHERE key = $1`
	upsertSQL = `INSERT INTO adminkit_storage (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	deleteSQL = `DELETE FROM adminkit_storage WHERE key = $1`
)

// Postgres implements Adapter on a single key/value table.
type Postgres struct {
	db   PgxPool
	opts *options
}

// NewPostgres wraps an open pool. Panics if db is nil.
func NewPostgres(db PgxPool, opts ...Option) *Postgres {
	if db == nil {
		panic("storage: postgres pool is required")
	}
	return &Postgres{db: db, opts: newOptions(opts)}
}

// EnsureSchema creates the storage table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, schemaSQL); err != nil {
		return errors.Join(ErrSchemaSetupFailed, err)
	}
	return nil
}

func (p *Postgres) Read(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), p.opts.timeout)
	defer cancel()

	var value string
	err := p.db.QueryRow(ctx, selectSQL, namespaced(p.opts.namespace, key)).Scan(&value)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			p.warn("read", key, err)
		}
		return "", false
	}
	return value, true
}

func (p *Postgres) Write(key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), p.opts.timeout)
	defer cancel()

	if _, err := p.db.Exec(ctx, upsertSQL, namespaced(p.opts.namespace, key), value); err != nil {
		p.warn("write", key, err)
	}
}

func (p *Postgres) Remove(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), p.opts.timeout)
	defer cancel()

	if _, err := p.db.Exec(ctx, deleteSQL, namespaced(p.opts.namespace, key)); err != nil {
		p.warn("remove", key, err)
	}
}

func (p *Postgres) warn(op, key string, err error) {
	p.opts.logger.Warn(fmt.Sprintf("storage postgres %s failed", op),
		slog.String("key", key),
		slog.String("error", err.Error()))
}
