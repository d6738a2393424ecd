package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Parse builds a T from the environment using its `env` struct tags.
//
// Values come from, in increasing precedence: envDefault tags, the .env files
// given with WithFiles, and the process environment. The process environment
// itself is never modified.
//
// Example:
//
//	type Config struct {
//		BaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:8080/api"`
//		Timeout time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
//	}
//
//	cfg, err := config.Parse[Config](config.WithFiles(".env"), config.WithPrefix("PACS_"))
func Parse[T any](opts ...Option) (T, error) {
	var v T
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	environment, err := o.resolve()
	if err != nil {
		return v, err
	}
	if err := env.ParseWithOptions(&v, env.Options{
		Environment: environment,
		Prefix:      o.prefix,
	}); err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}

// MustParse works like Parse but panics on failure.
func MustParse[T any](opts ...Option) T {
	v, err := Parse[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return v
}

func (o options) resolve() (map[string]string, error) {
	base := o.environment
	if base == nil {
		base = env.ToMap(os.Environ())
	}
	if len(o.files) == 0 {
		return base, nil
	}

	merged := make(map[string]string, len(base))
	for _, path := range o.files {
		values, err := godotenv.Read(path)
		if err != nil {
			if o.optional && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%w: %s: %w", ErrReadingEnvFile, path, err)
		}
		maps.Copy(merged, values)
	}
	maps.Copy(merged, base)
	return merged, nil
}

// cache holds one parsed value per config type for Load.
var cache = struct {
	mu     sync.Mutex
	values map[reflect.Type]any
}{values: make(map[reflect.Type]any)}

// Load parses the process environment into v once per type; later calls for
// the same type copy the cached value. Options only apply to the first call.
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}
	key := reflect.TypeFor[T]()

	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cached, ok := cache.values[key]; ok {
		*v = cached.(T)
		return nil
	}
	parsed, err := Parse[T](opts...)
	if err != nil {
		return err
	}
	cache.values[key] = parsed
	*v = parsed
	return nil
}

// ResetCache forgets every value cached by Load.
func ResetCache() {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	clear(cache.values)
}
