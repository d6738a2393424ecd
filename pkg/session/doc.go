// Package session holds the authentication state of an API client: the
// bearer credential, the authenticated identity and the selected tenant
// scope (organization).
//
// A Store is the single source of truth for "am I logged in". It is built
// once at process start, restored from a storage.Adapter, and passed by
// reference to everything that needs it. All operations are synchronous and
// atomic; readers take a Snapshot immediately before use and never cache it.
//
// # Lifecycle
//
//	Anonymous ──begin──► Authenticating ──login──► Authenticated
//	    ▲                      │                        │
//	    └────────fail──────────┘                        │
//	    └──────────────logout / invalidate──────────────┘
//
// Login is accepted from every state and overwrites any previous session.
// UpdateIdentity and SetTenantScope mutate attributes without changing the
// state. The table lives in lifecycle.go; events it does not list are
// rejected with ErrTransitionNotAllowed.
//
// # Usage
//
//	adapter, _ := storage.NewFile(path)
//	store := session.New(adapter, session.WithLogger(log))
//	store.Restore()
//
//	err := store.Login(
//	    session.Identity{ID: "u1", DisplayName: "Ada", Role: "ADMIN", Active: true},
//	    session.Credential{Value: token},
//	)
//	store.SetTenantScope("org-7")
//
//	snap := store.Snapshot()
//	if snap.IsAuthenticated() {
//	    req.Header.Set("Authorization", "Bearer "+snap.Token())
//	}
//
// # Invalidation
//
// Invalidate and Logout have the same effect; Invalidate is reported as a
// forced event with a Reason. InvalidateCredential only acts while the store
// still holds the given credential, which keeps a late 401 for an old token
// from ending a session created afterwards. Both are idempotent.
//
// # Events
//
// Subscribe registers a Listener that is called after the store lock is
// released, on the goroutine that made the change.
//
// # Error Handling
//
//   - ErrInvalidIdentity      – Login with an empty identity ID
//   - ErrInvalidCredential    – Login with an empty token
//   - ErrTransitionNotAllowed – event not accepted in the current state
//
// Restore never returns an error: corrupt persisted data reads as Anonymous.
package session
