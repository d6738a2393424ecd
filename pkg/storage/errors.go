package storage

import "errors"

var (
	ErrUnknownDriver                = errors.New("storage.unknown_driver")
	ErrEmptyFilePath                = errors.New("storage.empty_file_path")
	ErrFailedToParseRedisConnString = errors.New("storage.redis_invalid_url")
	ErrRedisNotReady                = errors.New("storage.redis_not_ready")
	ErrHealthcheckFailed            = errors.New("storage.healthcheck_failed")
	ErrEmptyDSN                     = errors.New("storage.postgres_empty_dsn")
	ErrFailedToParseDBConfig        = errors.New("storage.postgres_invalid_dsn")
	ErrFailedToOpenDBConnection     = errors.New("storage.postgres_not_ready")
	ErrSchemaSetupFailed            = errors.New("storage.postgres_schema_failed")
)
