package config

// Option configures a single Parse or Load call.
type Option func(*options)

type options struct {
	files       []string
	optional    bool
	prefix      string
	environment map[string]string
}

// WithFiles loads .env files before parsing. Later files override earlier
// ones; the process environment overrides all of them.
func WithFiles(paths ...string) Option {
	return func(o *options) {
		o.files = append(o.files, paths...)
	}
}

// WithOptionalFiles makes missing .env files a no-op instead of an error.
func WithOptionalFiles() Option {
	return func(o *options) {
		o.optional = true
	}
}

// WithPrefix is prepended to every env tag, e.g. "PACS_".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvironment replaces the process environment. Used in tests.
func WithEnvironment(env map[string]string) Option {
	return func(o *options) {
		o.environment = env
	}
}
