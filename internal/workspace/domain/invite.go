package domain

import "time"

// Invite is a single-use bearer grant into a workspace. The raw token is
// handed to the inviter once at creation; only its fingerprint is stored.
//
// State is fully determined by UsedAt and ExpiresAt: pending (UsedAt
// nil, not expired), accepted (UsedAt set) or expired (UsedAt nil, past
// ExpiresAt). Accepted and expired are terminal.
type Invite struct {
	ID          string
	WorkspaceID string
	Email       string // optional; informational only, acceptance is token-bearer based
	TokenHash   string
	Role        Role
	CreatedBy   string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	UsedAt      *time.Time
	UsedBy      string
}

// Pending reports whether the invite is still acceptable at now.
func (i Invite) Pending(now time.Time) bool {
	return i.UsedAt == nil && now.Before(i.ExpiresAt)
}
