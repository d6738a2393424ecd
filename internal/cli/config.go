package cli

import (
	"os"
	"path/filepath"

	"github.com/wizardpacs/adminkit/pkg/apiclient"
	"github.com/wizardpacs/adminkit/pkg/config"
	"github.com/wizardpacs/adminkit/pkg/logger"
	"github.com/wizardpacs/adminkit/pkg/storage"
)

// Config is everything pacsadmin reads from the environment.
type Config struct {
	API     apiclient.Config
	Storage storage.Config

	IdentityPath string `env:"PACS_IDENTITY_PATH" envDefault:"/auth/me"`

	// A CLI is quiet by default, so the level default differs from the library's.
	LogLevel  string `env:"PACS_LOG_LEVEL" envDefault:"error"`
	LogFormat string `env:"PACS_LOG_FORMAT" envDefault:"text"`
	Env       string `env:"PACS_ENV" envDefault:"development"`
}

func (c Config) logger() logger.Config {
	return logger.Config{Level: c.LogLevel, Format: c.LogFormat, Env: c.Env}
}

// defaultSessionFile is where the file backend keeps the session when
// PACS_STORAGE_FILE is unset.
func defaultSessionFile() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".pacsadmin", "session.json"), nil
}

func loadConfig(envFile string, environment map[string]string) (Config, error) {
	opts := []config.Option{}
	if envFile != "" {
		opts = append(opts, config.WithFiles(envFile), config.WithOptionalFiles())
	}
	if environment != nil {
		opts = append(opts, config.WithEnvironment(environment))
	}
	cfg, err := config.Parse[Config](opts...)
	if err != nil {
		return cfg, err
	}
	if cfg.Storage.Driver == storage.DriverFile && cfg.Storage.FilePath == "" {
		path, err := defaultSessionFile()
		if err != nil {
			return cfg, err
		}
		cfg.Storage.FilePath = path
	}
	return cfg, nil
}
