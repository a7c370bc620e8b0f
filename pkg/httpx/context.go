package httpx

import (
	"context"

	"github.com/SadidSD/Productive-Workspace/pkg/identity"
)

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyUser   ctxKey = "user"
)

// UserFromCtx returns the authenticated user placed in the context by
// AuthnMiddleware. ok is false on unauthenticated requests.
func UserFromCtx(ctx context.Context) (identity.User, bool) {
	u, ok := ctx.Value(CtxKeyUser).(identity.User)
	return u, ok
}

func userIDFromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return id
	}
	return ""
}
