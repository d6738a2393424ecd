package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wizardpacs/adminkit/pkg/storage"
)

func TestOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		t.Parallel()
		a, closeFn, err := storage.Open(ctx, storage.Config{Driver: storage.DriverMemory})
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &storage.Memory{}, a)
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "s.json")
		a, closeFn, err := storage.Open(ctx, storage.Config{Driver: storage.DriverFile, FilePath: path})
		require.NoError(t, err)
		defer closeFn()
		f, ok := a.(*storage.File)
		require.True(t, ok)
		assert.Equal(t, path, f.Path())
	})

	t.Run("file without path", func(t *testing.T) {
		t.Parallel()
		_, closeFn, err := storage.Open(ctx, storage.Config{Driver: storage.DriverFile})
		assert.ErrorIs(t, err, storage.ErrEmptyFilePath)
		assert.NotNil(t, closeFn)
	})

	t.Run("redis", func(t *testing.T) {
		t.Parallel()
		mr, err := miniredis.Run()
		require.NoError(t, err)
		defer mr.Close()

		a, closeFn, err := storage.Open(ctx, storage.Config{
			Driver:    storage.DriverRedis,
			Namespace: "wizard",
			Redis:     storage.RedisConfig{ConnectionURL: "redis://" + mr.Addr(), RetryAttempts: 1},
		})
		require.NoError(t, err)
		defer closeFn()

		a.Write(storage.KeyTenantScope, "org-7")
		got, err := mr.Get("wizard:tenantScope")
		require.NoError(t, err)
		assert.Equal(t, "org-7", got)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Parallel()
		_, _, err := storage.Open(ctx, storage.Config{Driver: "etcd"})
		assert.ErrorIs(t, err, storage.ErrUnknownDriver)
	})
}
