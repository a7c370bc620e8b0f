package sqlite

import (
	"context"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/domain"
)

type workspacesRepo struct {
	db dbtx
}

func (r *workspacesRepo) CreateWorkspace(ctx context.Context, w domain.Workspace) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workspaces (id, name, slug, created_at)
		VALUES (?, ?, ?, ?)`,
		w.ID, w.Name, w.Slug, toMillis(w.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *workspacesRepo) GetWorkspaceByID(ctx context.Context, id string) (domain.Workspace, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, slug, created_at
		FROM workspaces
		WHERE id = ?`, id)

	var (
		w         domain.Workspace
		createdAt int64
	)
	if err := row.Scan(&w.ID, &w.Name, &w.Slug, &createdAt); err != nil {
		return domain.Workspace{}, mapNotFound(err)
	}
	w.CreatedAt = fromMillis(createdAt)
	return w, nil
}
