package pacs

import (
	"context"

	"github.com/wizardpacs/adminkit/pkg/tenant"
)

// Organizations lists the backend's organizations as tenants, so a
// tenant.Resolver can turn "org use <name>" into an identifier.
func (c *Client) Organizations() tenant.Provider {
	return tenant.ProviderFunc(func(ctx context.Context) ([]tenant.Tenant, error) {
		orgs, err := c.ListOrganizations(ctx)
		if err != nil {
			return nil, err
		}
		tenants := make([]tenant.Tenant, 0, len(orgs))
		for _, o := range orgs {
			tenants = append(tenants, tenant.Tenant{ID: o.ID, Name: o.Name, Description: o.Description})
		}
		return tenants, nil
	})
}
