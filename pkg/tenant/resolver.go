package tenant

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/wizardpacs/adminkit/pkg/logger"
)

const (
	defaultCacheTTL = 5 * time.Minute
	listingKey      = "tenants"
)

// Resolver turns a user supplied reference (an ID or a name) into a Tenant.
type Resolver struct {
	provider Provider
	cache    Cache
	ttl      time.Duration
	logger   *slog.Logger
}

// NewResolver creates a resolver over provider. Panics if provider is nil.
func NewResolver(provider Provider, opts ...Option) *Resolver {
	if provider == nil {
		panic("tenant: provider is required")
	}
	r := &Resolver{
		provider: provider,
		cache:    NewInMemoryCache(DefaultCacheSize),
		ttl:      defaultCacheTTL,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve matches ref against IDs exactly, then against names ignoring case.
func (r *Resolver) Resolve(ctx context.Context, ref string) (*Tenant, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrInvalidIdentifier
	}

	tenants, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tenants {
		if tenants[i].ID == ref {
			return &tenants[i], nil
		}
	}

	var match *Tenant
	for i := range tenants {
		if strings.EqualFold(tenants[i].Name, ref) {
			if match != nil {
				return nil, ErrAmbiguousName
			}
			match = &tenants[i]
		}
	}
	if match == nil {
		return nil, ErrTenantNotFound
	}
	return match, nil
}

// List returns the cached listing or fetches it from the provider.
func (r *Resolver) List(ctx context.Context) ([]Tenant, error) {
	if cached, ok := r.cache.Get(listingKey); ok {
		return cached, nil
	}

	tenants, err := r.provider.ListTenants(ctx)
	if err != nil {
		r.logger.WarnContext(ctx, "tenant listing failed", logger.Error(err))
		return nil, errors.Join(ErrProviderFailed, err)
	}
	r.cache.Set(listingKey, tenants, r.ttl)
	return tenants, nil
}

// Invalidate drops the cached listing, e.g. after logout.
func (r *Resolver) Invalidate() {
	r.cache.Delete(listingKey)
}
