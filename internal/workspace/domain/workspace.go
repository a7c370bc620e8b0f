package domain

import "time"

type Workspace struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
}

// Membership associates a user with a workspace at a fixed role.
// Unique per (WorkspaceID, UserID); created exactly once, either at
// workspace creation (owner) or invite acceptance.
type Membership struct {
	WorkspaceID string
	UserID      string
	Role        Role
	JoinedAt    time.Time
}
