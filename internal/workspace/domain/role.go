package domain

// Role is the privilege a membership carries inside a workspace. Set at
// membership creation and never mutated by this service.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleViewer, RoleEditor, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// CanInvite reports whether a member holding r may issue invites.
// Richer authorization policy lives upstream; this is the floor the
// invite issuer enforces itself.
func (r Role) CanInvite() bool {
	return r == RoleAdmin || r == RoleOwner
}
