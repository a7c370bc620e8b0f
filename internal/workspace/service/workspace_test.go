package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/domain"
	"github.com/SadidSD/Productive-Workspace/internal/workspace/store/memory"
	"github.com/SadidSD/Productive-Workspace/pkg/clockx"
)

func newWorkspaceService(t *testing.T) (*WorkspaceService, *memory.Store, *clockx.FakeClock) {
	t.Helper()
	st := memory.New()
	clk := clockx.NewFake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	return &WorkspaceService{Store: st, Clock: clk}, st, clk
}

func TestWorkspaceCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates workspace with owner membership", func(t *testing.T) {
		svc, st, clk := newWorkspaceService(t)

		ws, err := svc.Create(ctx, "Design Studio", "design-studio", "user-1")
		require.NoError(t, err)
		require.NotEmpty(t, ws.ID)
		require.Equal(t, "design-studio", ws.Slug)
		require.Equal(t, clk.Now(), ws.CreatedAt)

		m, err := st.Memberships().GetMembership(ctx, ws.ID, "user-1")
		require.NoError(t, err)
		require.Equal(t, domain.RoleOwner, m.Role)
	})

	t.Run("slug collision", func(t *testing.T) {
		svc, st, _ := newWorkspaceService(t)

		first, err := svc.Create(ctx, "First", "shared-slug", "user-1")
		require.NoError(t, err)

		_, err = svc.Create(ctx, "Second", "shared-slug", "user-2")
		require.ErrorIs(t, err, ErrSlugTaken)

		// The losing attempt must leave no partial state behind.
		got, err := st.Workspaces().GetWorkspaceByID(ctx, first.ID)
		require.NoError(t, err)
		require.Equal(t, "First", got.Name)
	})

	t.Run("invalid slugs", func(t *testing.T) {
		svc, _, _ := newWorkspaceService(t)

		for _, slug := range []string{"", "Has Spaces", "UPPER", "-leading", "trailing-", "double--hyphen"} {
			_, err := svc.Create(ctx, "Name", slug, "user-1")
			require.ErrorIs(t, err, ErrInvalidWorkspaceRequest, "slug %q", slug)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		svc, _, _ := newWorkspaceService(t)

		_, err := svc.Create(ctx, "", "slug", "user-1")
		require.ErrorIs(t, err, ErrInvalidWorkspaceRequest)

		_, err = svc.Create(ctx, "Name", "slug", "")
		require.ErrorIs(t, err, ErrInvalidWorkspaceRequest)
	})
}

func TestWorkspaceMembers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("member lists oldest first", func(t *testing.T) {
		svc, st, clk := newWorkspaceService(t)

		ws, err := svc.Create(ctx, "Team", "team", "user-owner")
		require.NoError(t, err)

		clk.Advance(time.Minute)
		_, err = st.Memberships().UpsertMembership(ctx, domain.Membership{
			WorkspaceID: ws.ID, UserID: "user-later", Role: domain.RoleViewer, JoinedAt: clk.Now(),
		})
		require.NoError(t, err)

		members, err := svc.Members(ctx, ws.ID, "user-owner")
		require.NoError(t, err)
		require.Len(t, members, 2)
		require.Equal(t, "user-owner", members[0].UserID)
		require.Equal(t, "user-later", members[1].UserID)
	})

	t.Run("non-member rejected", func(t *testing.T) {
		svc, _, _ := newWorkspaceService(t)

		ws, err := svc.Create(ctx, "Team", "team", "user-owner")
		require.NoError(t, err)

		_, err = svc.Members(ctx, ws.ID, "user-stranger")
		require.ErrorIs(t, err, ErrNotMember)
	})
}

func TestHousekeepingCleanup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := memory.New()
	clk := clockx.NewFake(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	wsID := seedWorkspace(t, st, clk.Now())

	invites := &InviteService{Store: st, Clock: clk}

	shortToken, _, err := invites.CreateInvite(ctx, wsID, testAdminID, domain.RoleViewer, "", time.Hour)
	require.NoError(t, err)
	longToken, _, err := invites.CreateInvite(ctx, wsID, testAdminID, domain.RoleViewer, "", 48*time.Hour)
	require.NoError(t, err)
	usedToken, _, err := invites.CreateInvite(ctx, wsID, testAdminID, domain.RoleViewer, "", time.Hour)
	require.NoError(t, err)
	_, err = invites.Accept(ctx, usedToken, "user-joiner")
	require.NoError(t, err)

	clk.Advance(2 * time.Hour)

	hk := NewHousekeepingService(st, testLogger(), clk, time.Hour)
	hk.Cleanup(ctx)

	// The short-lived pending invite is gone; the long-lived one still
	// resolves; the used one stays on file as audit trail.
	_, err = invites.Resolve(ctx, shortToken)
	require.ErrorIs(t, err, ErrInviteNotFound)

	_, err = invites.Resolve(ctx, longToken)
	require.NoError(t, err)

	_, err = invites.Accept(ctx, usedToken, "user-joiner")
	require.NoError(t, err, "used invite survives cleanup for idempotent accepts")
}
