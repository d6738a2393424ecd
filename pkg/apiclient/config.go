package apiclient

import "time"

const (
	DefaultBaseURL   = "http://localhost:8080/api"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "pacsadmin/1.0"
)

// Config holds the pipeline settings read from the environment.
type Config struct {
	BaseURL   string        `env:"PACS_API_BASE_URL" envDefault:"http://localhost:8080/api"`
	Timeout   time.Duration `env:"PACS_API_TIMEOUT" envDefault:"30s"`
	UserAgent string        `env:"PACS_API_USER_AGENT" envDefault:"pacsadmin/1.0"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}
