package sqlite

import (
	"context"
	"encoding/json"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/domain"
)

type documentsRepo struct {
	db dbtx
}

func (r *documentsRepo) GetDocument(ctx context.Context, ownerID string) (domain.Document, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT owner_id, sections, updated_at
		FROM content_documents
		WHERE owner_id = ?`, ownerID)

	var (
		doc       domain.Document
		raw       string
		updatedAt int64
	)
	if err := row.Scan(&doc.OwnerID, &raw, &updatedAt); err != nil {
		return domain.Document{}, mapNotFound(err)
	}

	if err := json.Unmarshal([]byte(raw), &doc.Sections); err != nil {
		return domain.Document{}, err
	}
	doc.UpdatedAt = fromMillis(updatedAt)
	return doc, nil
}

func (r *documentsRepo) ReplaceDocument(ctx context.Context, doc domain.Document) error {
	if doc.Sections == nil {
		doc.Sections = domain.Sections{}
	}
	raw, err := json.Marshal(doc.Sections)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO content_documents (owner_id, sections, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (owner_id) DO UPDATE SET
			sections = excluded.sections,
			updated_at = excluded.updated_at`,
		doc.OwnerID, string(raw), toMillis(doc.UpdatedAt),
	)
	return err
}
