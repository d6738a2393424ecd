package storage

// Fixed keys under which the session store keeps its state.
const (
	KeyCredential           = "credential"
	KeyCredentialAcquiredAt = "credentialAcquiredAt"
	KeyIdentity             = "identity"
	KeyTenantScope          = "tenantScope"
)

// Adapter is a durable string key/value store.
// Implementations must be safe for concurrent use and must never panic.
type Adapter interface {
	// Read returns the stored value and true, or "" and false when the key
	// is absent or the backend could not be read.
	Read(key string) (string, bool)

	// Write stores value under key. Failures are dropped.
	Write(key, value string)

	// Remove deletes key. Removing a missing key is a no-op.
	Remove(key string)
}

// namespaced joins the namespace and key the same way for every backend.
func namespaced(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return namespace + ":" + key
}
