package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/domain"
)

type invitesRepo struct {
	db dbtx
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workspace_invites
			(id, workspace_id, email, token_hash, role, created_by, created_at, expires_at, used_at, used_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID,
		inv.WorkspaceID,
		mapStringNull(inv.Email),
		inv.TokenHash,
		string(inv.Role),
		inv.CreatedBy,
		toMillis(inv.CreatedAt),
		toMillis(inv.ExpiresAt),
		toMillisPtr(inv.UsedAt),
		mapStringNull(inv.UsedBy),
	)
	return mapConstraint(err)
}

func (r *invitesRepo) GetPendingInviteByTokenHash(ctx context.Context, hash string, now time.Time) (domain.Invite, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, workspace_id, email, token_hash, role, created_by, created_at, expires_at, used_at, used_by
		FROM workspace_invites
		WHERE token_hash = ?
		  AND used_at IS NULL
		  AND expires_at > ?`,
		hash, toMillis(now))

	return scanInvite(row)
}

func (r *invitesRepo) GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, workspace_id, email, token_hash, role, created_by, created_at, expires_at, used_at, used_by
		FROM workspace_invites
		WHERE token_hash = ?`, hash)

	return scanInvite(row)
}

// ConsumeInvite is the compare-and-swap on used_at: the WHERE clause
// only matches a row that is still pending, so exactly one concurrent
// caller observes rows-affected = 1.
func (r *invitesRepo) ConsumeInvite(ctx context.Context, hash, usedBy string, now time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE workspace_invites
		SET used_at = ?, used_by = ?
		WHERE token_hash = ?
		  AND used_at IS NULL
		  AND expires_at > ?`,
		toMillis(now), usedBy, hash, toMillis(now))
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *invitesRepo) DeleteExpiredInvites(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM workspace_invites
		WHERE used_at IS NULL
		  AND expires_at <= ?`,
		toMillis(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanInvite(s scanner) (domain.Invite, error) {
	var (
		inv       domain.Invite
		email     sql.NullString
		role      string
		createdAt int64
		expiresAt int64
		usedAt    sql.NullInt64
		usedBy    sql.NullString
	)
	err := s.Scan(
		&inv.ID, &inv.WorkspaceID, &email, &inv.TokenHash, &role,
		&inv.CreatedBy, &createdAt, &expiresAt, &usedAt, &usedBy,
	)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}

	inv.Email = mapNullString(email)
	inv.Role = domain.Role(role)
	inv.CreatedAt = fromMillis(createdAt)
	inv.ExpiresAt = fromMillis(expiresAt)
	inv.UsedAt = fromMillisPtr(usedAt)
	inv.UsedBy = mapNullString(usedBy)
	return inv, nil
}
