package booking

import (
	"strings"

	"github.com/BruksfildServices01/petsit-scheduler/internal/httperr"
)

type Role string

const (
	RoleClient Role = "client"
	RoleSitter Role = "sitter"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleClient:
		return RoleClient, true
	case RoleSitter:
		return RoleSitter, true
	}
	return "", false
}

// Actor is the logged-in user every engine call is made on behalf of.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return httperr.ErrValidation("actor", "actor_required")
	}
	if _, ok := ParseRole(string(a.Role)); !ok {
		return httperr.ErrValidation("actor", "unknown_role")
	}
	return nil
}

func (a Actor) IsClient() bool { return a.Role == RoleClient }
func (a Actor) IsSitter() bool { return a.Role == RoleSitter }
