package session

import (
	"encoding/json"
	"time"
)

// Credential is an opaque bearer token. It is never parsed locally.
type Credential struct {
	Value      string
	AcquiredAt time.Time
}

// Identity is the authenticated principal.
type Identity struct {
	ID             string `json:"id"`
	DisplayName    string `json:"displayName"`
	Role           string `json:"role"`
	Active         bool   `json:"active"`
	Email          string `json:"email,omitempty"`
	Username       string `json:"username,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
}

// IdentityPatch carries a partial profile update. Nil fields are left untouched.
type IdentityPatch struct {
	DisplayName    *string
	Role           *string
	Active         *bool
	Email          *string
	Username       *string
	OrganizationID *string
}

func (p IdentityPatch) apply(id *Identity) bool {
	changed := false
	set := func(dst *string, src *string) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}
	set(&id.DisplayName, p.DisplayName)
	set(&id.Role, p.Role)
	set(&id.Email, p.Email)
	set(&id.Username, p.Username)
	set(&id.OrganizationID, p.OrganizationID)
	if p.Active != nil && id.Active != *p.Active {
		id.Active = *p.Active
		changed = true
	}
	return changed
}

func encodeIdentity(id Identity) (string, error) {
	b, err := json.Marshal(id)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeIdentity returns false for anything that is not a JSON object with a non-empty id.
func decodeIdentity(raw string) (Identity, bool) {
	var id Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return Identity{}, false
	}
	if id.ID == "" {
		return Identity{}, false
	}
	return id, true
}
