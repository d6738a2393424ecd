package tenant

import "context"

// Tenant is an organization the user can scope requests to.
type Tenant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Provider lists the organizations visible to the current session.
type Provider interface {
	ListTenants(ctx context.Context) ([]Tenant, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) ([]Tenant, error)

func (f ProviderFunc) ListTenants(ctx context.Context) ([]Tenant, error) {
	return f(ctx)
}
