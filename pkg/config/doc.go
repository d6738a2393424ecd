// Package config loads env-tagged configuration structs.
//
// It wraps github.com/caarlos0/env/v11 for parsing and github.com/joho/godotenv
// for reading .env files. Files are read into a private map that is layered
// under the process environment, so loading configuration never mutates
// os.Environ.
//
//	type Config struct {
//		API     apiclient.Config
//		Storage storage.Config
//	}
//
//	cfg, err := config.Parse[Config](
//		config.WithFiles(".env"),
//		config.WithOptionalFiles(),
//	)
//
// Load caches one value per type for the life of the process; ResetCache
// clears it between tests.
package config
