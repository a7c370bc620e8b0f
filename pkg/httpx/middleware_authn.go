package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/SadidSD/Productive-Workspace/pkg/identity"
	"github.com/SadidSD/Productive-Workspace/pkg/slogx"
)

// AuthnMiddleware verifies the Authorization bearer token against the
// external identity provider's verifier and injects the authenticated
// user into the request context.
func AuthnMiddleware(v identity.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			user, err := v.Verify(raw)
			if err != nil {
				log.Warn("bearer token verification failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			ctx = contextWithUser(ctx, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithUser(ctx context.Context, u identity.User) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, u.ID)
	ctx = context.WithValue(ctx, CtxKeyUser, u)
	return ctx
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
