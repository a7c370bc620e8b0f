package workspace_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SadidSD/Productive-Workspace/pkg/worksdk"
)

// TestInviteLifecycle exercises the happy path end to end: create a
// workspace, mint an invite, resolve it from the join page, accept it,
// and observe the membership and the token's terminal state.
func TestInviteLifecycle(t *testing.T) {
	baseURL, cleanup := setupWorkspaceContainer(t)
	defer cleanup()

	ctx := t.Context()
	owner := sessionFor(t, baseURL, "user-owner")
	joiner := sessionFor(t, baseURL, "user-joiner")
	public := worksdk.NewClient(baseURL)

	ws, err := owner.CreateWorkspace(ctx, worksdk.CreateWorkspaceRequest{
		Name: "Launch Plan",
		Slug: "launch-plan",
	})
	require.NoError(t, err)
	require.NotEmpty(t, ws.ID)

	invite, err := owner.CreateInvite(ctx, ws.ID, worksdk.CreateInviteRequest{
		Role:       "editor",
		Email:      "joiner@example.com",
		TTLSeconds: int64((7 * 24 * time.Hour).Seconds()),
	})
	require.NoError(t, err)
	require.NotEmpty(t, invite.InviteToken)

	// The join page resolves the pending invite without side effects.
	resolved, err := public.ResolveInvite(ctx, invite.InviteToken)
	require.NoError(t, err)
	assert.Equal(t, ws.ID, resolved.WorkspaceID)
	assert.Equal(t, "editor", resolved.Role)

	accepted, err := joiner.AcceptInvite(ctx, invite.InviteToken)
	require.NoError(t, err)
	assert.Equal(t, ws.ID, accepted.WorkspaceID)

	members, err := owner.Members(ctx, ws.ID)
	require.NoError(t, err)
	require.Len(t, members.Members, 2)
	assert.Equal(t, "user-owner", members.Members[0].UserID)
	assert.Equal(t, "owner", members.Members[0].Role)
	assert.Equal(t, "user-joiner", members.Members[1].UserID)
	assert.Equal(t, "editor", members.Members[1].Role)

	// The token is terminal: resolution now fails uniformly.
	_, err = public.ResolveInvite(ctx, invite.InviteToken)
	require.Error(t, err)
	assert.True(t, worksdk.IsInvalidGrant(err))

	// Re-accept by the member who joined stays idempotent.
	accepted, err = joiner.AcceptInvite(ctx, invite.InviteToken)
	require.NoError(t, err)
	assert.Equal(t, ws.ID, accepted.WorkspaceID)

	// A third user cannot ride the consumed token.
	latecomer := sessionFor(t, baseURL, "user-latecomer")
	_, err = latecomer.AcceptInvite(ctx, invite.InviteToken)
	require.Error(t, err)
}

func TestInvitePrivilegeFloor(t *testing.T) {
	baseURL, cleanup := setupWorkspaceContainer(t)
	defer cleanup()

	ctx := t.Context()
	owner := sessionFor(t, baseURL, "user-owner")
	viewer := sessionFor(t, baseURL, "user-viewer")

	ws, err := owner.CreateWorkspace(ctx, worksdk.CreateWorkspaceRequest{
		Name: "Guarded",
		Slug: "guarded",
	})
	require.NoError(t, err)

	invite, err := owner.CreateInvite(ctx, ws.ID, worksdk.CreateInviteRequest{Role: "viewer"})
	require.NoError(t, err)
	_, err = viewer.AcceptInvite(ctx, invite.InviteToken)
	require.NoError(t, err)

	// A viewer may not mint invites.
	_, err = viewer.CreateInvite(ctx, ws.ID, worksdk.CreateInviteRequest{Role: "viewer"})
	require.Error(t, err)

	// Nor may a non-member list members.
	stranger := sessionFor(t, baseURL, "user-stranger")
	_, err = stranger.Members(ctx, ws.ID)
	require.Error(t, err)
}

// TestInviteConcurrentAccept races several authenticated users over one
// token against the real database: exactly one join may win.
func TestInviteConcurrentAccept(t *testing.T) {
	baseURL, cleanup := setupWorkspaceContainer(t)
	defer cleanup()

	ctx := t.Context()
	owner := sessionFor(t, baseURL, "user-owner")

	ws, err := owner.CreateWorkspace(ctx, worksdk.CreateWorkspaceRequest{
		Name: "Contended",
		Slug: "contended",
	})
	require.NoError(t, err)

	invite, err := owner.CreateInvite(ctx, ws.ID, worksdk.CreateInviteRequest{Role: "editor"})
	require.NoError(t, err)

	const racers = 8
	sessions := make([]*worksdk.Session, racers)
	for i := range sessions {
		sessions[i] = sessionFor(t, baseURL, fmt.Sprintf("racer-%d", i))
	}

	errs := make([]error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = sessions[i].AcceptInvite(ctx, invite.InviteToken)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		}
	}
	require.Equal(t, 1, wins, "exactly one racer may consume the token")

	members, err := owner.Members(ctx, ws.ID)
	require.NoError(t, err)
	require.Len(t, members.Members, 2, "owner plus the single winner")
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	baseURL, cleanup := setupWorkspaceContainer(t)
	defer cleanup()

	ctx := t.Context()
	noToken := worksdk.NewClient(baseURL).WithToken("")
	_, err := noToken.CreateWorkspace(ctx, worksdk.CreateWorkspaceRequest{Name: "X", Slug: "x"})
	require.Error(t, err)

	badToken := worksdk.NewClient(baseURL).WithToken("not-a-jwt")
	_, err = badToken.CreateWorkspace(ctx, worksdk.CreateWorkspaceRequest{Name: "X", Slug: "x"})
	require.Error(t, err)
}
