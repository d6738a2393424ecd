// Package tenant resolves and tracks the organization (tenant scope) that
// API calls are made under.
//
// The scope itself lives in the session store; this package only helps to
// pick it and to make it visible in logs:
//
//   - Resolver maps a user supplied reference, either an organization ID or
//     its name, onto a Tenant using a Provider (normally the PACS API
//     client). Listings are cached in an LRU Cache for a short TTL.
//   - WithScope / ScopeFromContext carry the scope of an individual call on
//     its context, and LoggerExtractor adds it to log records.
//
// # Usage
//
//	resolver := tenant.NewResolver(pacsClient.Organizations(), tenant.WithCacheTTL(time.Minute))
//	t, err := resolver.Resolve(ctx, "Clinica Norte")
//	if err != nil {
//	    return err
//	}
//	store.SetTenantScope(t.ID)
//
// # Error Handling
//
//   - ErrInvalidIdentifier – empty reference
//   - ErrTenantNotFound    – no ID or name matched
//   - ErrAmbiguousName     – several organizations share the name
//   - ErrProviderFailed    – the listing could not be fetched (joined with the cause)
package tenant
