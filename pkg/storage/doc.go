// Package storage provides the durable key/value persistence used by the
// session store to survive process restarts.
//
// An Adapter stores opaque strings under a small set of fixed keys
// (credential, identity JSON, tenant scope). It knows nothing about session
// semantics. All operations are synchronous from the caller's point of view
// and never fail loudly: a broken backend degrades to reads that report the
// key as absent and writes that are silently dropped (and logged).
//
// # Backends
//
//   - Memory   – process-local map, for tests and ephemeral runs.
//   - File     – a single JSON document on disk, written atomically.
//   - Redis    – any go-redis UniversalClient, keys namespaced.
//   - Postgres – a pgx pool backed key/value table.
//
// Open builds the backend selected by Config:
//
//	cfg := storage.Config{Driver: storage.DriverFile, FilePath: "/home/me/.pacsadmin/session.json"}
//	adapter, closeFn, err := storage.Open(ctx, cfg, storage.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	defer closeFn()
//
//	adapter.Write(storage.KeyTenantScope, "org-7")
//	scope, ok := adapter.Read(storage.KeyTenantScope)
//
// # Error Handling
//
// Adapter methods do not return errors by contract. Construction helpers
// (Open, ConnectRedis, ConnectPostgres, Postgres.EnsureSchema) do, using the
// sentinel values declared in errors.go.
package storage
