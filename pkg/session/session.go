package session

// Session is a point-in-time copy of the store state.
// Credential and Identity are both non-nil iff State is Authenticated.
type Session struct {
	State       State
	Credential  *Credential
	Identity    *Identity
	TenantScope string
	Generation  uint64
}

// IsAuthenticated reports whether the snapshot carries a usable credential.
func (s Session) IsAuthenticated() bool {
	return s.State == Authenticated && s.Credential != nil
}

// Token returns the credential value or "" when anonymous.
func (s Session) Token() string {
	if !s.IsAuthenticated() {
		return ""
	}
	return s.Credential.Value
}

// HasTenantScope reports whether an organization is selected.
func (s Session) HasTenantScope() bool {
	return s.TenantScope != ""
}

func (s Session) clone() Session {
	out := s
	if s.Credential != nil {
		c := *s.Credential
		out.Credential = &c
	}
	if s.Identity != nil {
		id := *s.Identity
		out.Identity = &id
	}
	return out
}
