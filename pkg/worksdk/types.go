// Package worksdk is a typed HTTP client for the workspace service. It
// carries the request/response DTOs the service speaks, so handlers and
// callers (the e2e suite included) share one wire vocabulary.
package worksdk

import (
	"encoding/json"
	"time"
)

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "invalid_request",
	// "invalid_grant")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description,omitempty"`
}

// CreateWorkspaceRequest creates a workspace owned by the caller.
type CreateWorkspaceRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// WorkspaceResponse describes a workspace.
type WorkspaceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// MemberResponse is one membership row.
type MemberResponse struct {
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// MembersResponse lists a workspace's members, oldest first.
type MembersResponse struct {
	WorkspaceID string           `json:"workspace_id"`
	Members     []MemberResponse `json:"members"`
}

// CreateInviteRequest mints an invite into a workspace.
type CreateInviteRequest struct {
	// Role the invitee joins at: viewer, editor or admin.
	Role string `json:"role"`

	// Email is informational only; acceptance is token-bearer based.
	Email string `json:"email,omitempty"`

	// TTLSeconds bounds the invite's validity. Zero applies the
	// service default.
	TTLSeconds int64 `json:"ttl_seconds,omitempty"`
}

// CreateInviteResponse carries the raw invite token. This is the only
// time the token is ever visible; the service stores a fingerprint.
type CreateInviteResponse struct {
	InviteID    string    `json:"invite_id"`
	WorkspaceID string    `json:"workspace_id"`
	InviteToken string    `json:"invite_token"`
	Role        string    `json:"role"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ResolveInviteResponse describes a pending invite for the join page.
type ResolveInviteResponse struct {
	WorkspaceID string    `json:"workspace_id"`
	Role        string    `json:"role"`
	Email       string    `json:"email,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AcceptInviteResponse reports the workspace the caller joined.
type AcceptInviteResponse struct {
	WorkspaceID string `json:"workspace_id"`
}

// DocumentResponse is the persisted multi-section document body.
type DocumentResponse struct {
	OwnerID   string                     `json:"owner_id"`
	Sections  map[string]json.RawMessage `json:"sections"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// SaveStatusResponse is the save-status contract of the autosave
// engine: saved, unsaved or saving, with save_failed set after a
// persistence failure until a later save succeeds.
type SaveStatusResponse struct {
	Status      string     `json:"status"`
	SaveFailed  bool       `json:"save_failed"`
	LastSavedAt *time.Time `json:"last_saved_at,omitempty"`
}

// HealthResponse reports liveness/readiness.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime,omitempty"`
	Version string `json:"version,omitempty"`
}
