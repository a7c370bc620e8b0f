package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"time"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/domain"
	"github.com/SadidSD/Productive-Workspace/internal/workspace/store"
	"github.com/SadidSD/Productive-Workspace/pkg/clockx"
	"github.com/SadidSD/Productive-Workspace/pkg/idx"
	"github.com/SadidSD/Productive-Workspace/pkg/slogx"
)

var (
	ErrInvalidWorkspaceRequest = errors.New("invalid workspace request")
	ErrSlugTaken               = errors.New("workspace slug already taken")
	ErrNotMember               = errors.New("not a member of this workspace")
)

// slugPattern: lowercase alphanumerics separated by single hyphens.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const maxSlugLength = 64

type WorkspaceService struct {
	Store store.Store
	Clock clockx.Clock
}

func (s *WorkspaceService) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return time.Now()
}

// Create inserts the workspace and its creator's owner membership in
// one transaction: a workspace is never observable without an owner.
func (s *WorkspaceService) Create(ctx context.Context, name, slug, creatorID string) (domain.Workspace, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	if name == "" || creatorID == "" {
		log.Warn("workspace creation missing required fields")
		return domain.Workspace{}, ErrInvalidWorkspaceRequest
	}
	if len(slug) > maxSlugLength || !slugPattern.MatchString(slug) {
		log.Warn("workspace creation with invalid slug", slog.String("slug", slug))
		return domain.Workspace{}, ErrInvalidWorkspaceRequest
	}

	now := s.now()
	ws := domain.Workspace{
		ID:        idx.New().String(),
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
	}

	// 2. Insert workspace + owner membership atomically.
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Workspaces().CreateWorkspace(ctx, ws); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				log.Warn("workspace creation with taken slug", slog.String("slug", slug))
				return ErrSlugTaken
			}
			log.Error("failed to create workspace", slog.Any("error", err))
			return err
		}

		_, err := tx.Memberships().UpsertMembership(ctx, domain.Membership{
			WorkspaceID: ws.ID,
			UserID:      creatorID,
			Role:        domain.RoleOwner,
			JoinedAt:    now,
		})
		if err != nil {
			log.Error("failed to create owner membership",
				slog.String("workspace_id", ws.ID),
				slog.Any("error", err),
			)
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Workspace{}, err
	}

	log.Info("workspace created",
		slog.String("workspace_id", ws.ID),
		slog.String("slug", slug),
		slog.String("owner_id", creatorID),
	)

	return ws, nil
}

// Members lists the workspace's memberships, oldest first. The caller
// must themselves be a member.
func (s *WorkspaceService) Members(ctx context.Context, workspaceID, callerID string) ([]domain.Membership, error) {
	log := slogx.FromContext(ctx)

	if workspaceID == "" || callerID == "" {
		return nil, ErrInvalidWorkspaceRequest
	}

	_, err := s.Store.Memberships().GetMembership(ctx, workspaceID, callerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("member listing attempted by non-member",
				slog.String("workspace_id", workspaceID),
				slog.String("caller_id", callerID),
			)
			return nil, ErrNotMember
		}
		log.Error("failed to fetch caller membership", slog.Any("error", err))
		return nil, err
	}

	members, err := s.Store.Memberships().ListWorkspaceMembers(ctx, workspaceID)
	if err != nil {
		log.Error("failed to list workspace members", slog.Any("error", err))
		return nil, err
	}
	return members, nil
}
