package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is the fixed set of account roles
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleDeveloper Role = "DESENVOLVEDOR"
	RoleClient    Role = "CLIENTE"
)

// roleLabels maps each role to its stable external label
var roleLabels = map[Role]string{
	RoleAdmin:     "admin",
	RoleDeveloper: "dev",
	RoleClient:    "cliente",
}

// Label returns the external authorization-role label for the role
func (r Role) Label() string {
	return roleLabels[r]
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// ParseRole resolves a role from its name or its external label
func ParseRole(s string) (Role, error) {
	candidate := Role(strings.ToUpper(strings.TrimSpace(s)))
	if candidate.Valid() {
		return candidate, nil
	}
	for role, label := range roleLabels {
		if label == strings.ToLower(strings.TrimSpace(s)) {
			return role, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// MarshalJSON serializes the role as its external label
func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, string(r))
	}
	return json.Marshal(r.Label())
}

// UnmarshalJSON accepts either the role name or its external label
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	role, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}
