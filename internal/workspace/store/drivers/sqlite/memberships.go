package sqlite

import (
	"context"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/domain"
)

type membershipsRepo struct {
	db dbtx
}

func (r *membershipsRepo) GetMembership(ctx context.Context, workspaceID, userID string) (domain.Membership, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT workspace_id, user_id, role, joined_at
		FROM workspace_members
		WHERE workspace_id = ? AND user_id = ?`,
		workspaceID, userID)

	return scanMembership(row)
}

// UpsertMembership inserts the membership, or leaves an existing row for
// the same (workspace, user) pair untouched. ON CONFLICT DO NOTHING is
// what keeps the role stable when an invite acceptance is retried.
func (r *membershipsRepo) UpsertMembership(ctx context.Context, m domain.Membership) (domain.Membership, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workspace_members (workspace_id, user_id, role, joined_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (workspace_id, user_id) DO NOTHING`,
		m.WorkspaceID, m.UserID, string(m.Role), toMillis(m.JoinedAt),
	)
	if err != nil {
		return domain.Membership{}, err
	}

	// Read back the durable row: the original on conflict, ours otherwise.
	return r.GetMembership(ctx, m.WorkspaceID, m.UserID)
}

func (r *membershipsRepo) ListWorkspaceMembers(ctx context.Context, workspaceID string) ([]domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT workspace_id, user_id, role, joined_at
		FROM workspace_members
		WHERE workspace_id = ?
		ORDER BY joined_at ASC, user_id ASC`,
		workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMembership(s scanner) (domain.Membership, error) {
	var (
		m        domain.Membership
		role     string
		joinedAt int64
	)
	if err := s.Scan(&m.WorkspaceID, &m.UserID, &role, &joinedAt); err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	m.Role = domain.Role(role)
	m.JoinedAt = fromMillis(joinedAt)
	return m, nil
}
