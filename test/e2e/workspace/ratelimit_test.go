package workspace_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SadidSD/Productive-Workspace/pkg/worksdk"
)

// TestInviteResolutionRateLimited hammers the public invite resolution
// endpoint, which carries the strict profile because it is the
// token-guessing surface. With default limits the burst runs out well
// inside the loop.
func TestInviteResolutionRateLimited(t *testing.T) {
	baseURL, cleanup := setupContainerWithDefaultRateLimits(t)
	defer cleanup()

	ctx := t.Context()
	client := worksdk.NewClient(baseURL)

	limited := false
	for i := 0; i < 30; i++ {
		_, err := client.ResolveInvite(ctx, "no-such-token")
		require.Error(t, err)

		var apiErr *worksdk.APIError
		require.True(t, errors.As(err, &apiErr))
		if apiErr.StatusCode == http.StatusTooManyRequests {
			limited = true
			break
		}
		// Until the limit trips, the lookup fails uniformly.
		require.True(t, worksdk.IsInvalidGrant(err))
	}

	require.True(t, limited, "strict rate limit never tripped")
}
