package store

import (
	"context"
	"errors"
	"time"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite in
// production, memory in tests) implement it. Sub-repositories keep the
// surface tidy and let services depend on exactly the tables they touch.
type Store interface {
	Workspaces() Workspaces
	Memberships() Memberships
	Invites() Invites
	Documents() Documents

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn
	// returns nil and rolling back otherwise. Preferred over Tx for
	// multi-step operations that must be atomic (invite acceptance,
	// workspace creation with its owner membership).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos and adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Workspaces interface {
	// CreateWorkspace inserts a new workspace (id is provided by the app
	// via ULID). Returns ErrAlreadyExists on a slug collision.
	CreateWorkspace(ctx context.Context, w domain.Workspace) error

	// GetWorkspaceByID returns a workspace by id.
	GetWorkspaceByID(ctx context.Context, id string) (domain.Workspace, error)
}

type Memberships interface {
	// GetMembership returns the membership for (workspaceID, userID).
	GetMembership(ctx context.Context, workspaceID, userID string) (domain.Membership, error)

	// UpsertMembership creates the membership unless one already exists
	// for the pair, in which case the existing row (including its role)
	// is left untouched. Returns the row that is durable afterwards.
	UpsertMembership(ctx context.Context, m domain.Membership) (domain.Membership, error)

	// ListWorkspaceMembers returns all memberships of a workspace,
	// oldest first.
	ListWorkspaceMembers(ctx context.Context, workspaceID string) ([]domain.Membership, error)
}

type Invites interface {
	// CreateInvite writes a new invite (token_hash is the fingerprint of
	// the opaque invite token). Returns ErrAlreadyExists when the
	// fingerprint collides with an existing row.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetPendingInviteByTokenHash returns a not-used, not-expired invite
	// by fingerprint. Unknown, used and expired all map to ErrNotFound.
	GetPendingInviteByTokenHash(ctx context.Context, hash string, now time.Time) (domain.Invite, error)

	// GetInviteByTokenHash returns the invite regardless of state. Used
	// by acceptance to tell an already-consumed token apart from an
	// unknown one.
	GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error)

	// ConsumeInvite atomically sets used_at/used_by iff used_at is still
	// null and the invite is unexpired at now. Returns true iff this
	// call performed the transition. This conditional update is the sole
	// concurrency-control point of invite acceptance.
	ConsumeInvite(ctx context.Context, hash, usedBy string, now time.Time) (bool, error)

	// DeleteExpiredInvites removes expired, never-used invites and
	// reports how many were deleted. Housekeeping only; used invites
	// are kept as an audit trail.
	DeleteExpiredInvites(ctx context.Context, now time.Time) (int64, error)
}

type Documents interface {
	// GetDocument returns the persisted document for ownerID. A document
	// that was never flushed reads back as ErrNotFound.
	GetDocument(ctx context.Context, ownerID string) (domain.Document, error)

	// ReplaceDocument upserts the whole document. Last write wins at the
	// document level; per-section merging happens upstream in the
	// autosave engine.
	ReplaceDocument(ctx context.Context, doc domain.Document) error
}
