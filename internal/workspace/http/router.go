package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/autosave"
	"github.com/SadidSD/Productive-Workspace/internal/workspace/service"
	"github.com/SadidSD/Productive-Workspace/internal/workspace/store"
	"github.com/SadidSD/Productive-Workspace/pkg/httpx"
	"github.com/SadidSD/Productive-Workspace/pkg/identity"
	"github.com/SadidSD/Productive-Workspace/pkg/slogx"

	_ "github.com/SadidSD/Productive-Workspace/api/workspace" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     identity.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	WorkspaceService    *service.WorkspaceService
	InviteService       *service.InviteService
	AutosaveManager     *autosave.Manager
	HousekeepingService *service.HousekeepingService
}

func NewRouter(
	verifier identity.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerWorkspaces()
	r.registerInvites()
	r.registerDocuments()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Workspace Collaboration Service API
//	@version		0.1.0
//	@description	Workspace invitation lifecycle with one-time bearer invite tokens, plus a
//	@description	debounced document autosave engine for multi-section content documents.
//	@description
//	@description				Authentication is delegated to an external identity provider; all
//	@description				protected endpoints expect one of its bearer tokens.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerWorkspaces() {
	createHandler := &WorkspaceCreateHandler{WorkspaceService: r.WorkspaceService}
	r.Mux.Handle("POST /v1/workspaces",
		httpx.Chain(createHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	membersHandler := &WorkspaceMembersHandler{WorkspaceService: r.WorkspaceService}
	r.Mux.Handle("GET /v1/workspaces/{id}/members",
		httpx.Chain(membersHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerInvites() {
	mintHandler := &InviteCreateHandler{InviteService: r.InviteService}
	r.Mux.Handle("POST /v1/workspaces/{id}/invites",
		httpx.Chain(mintHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// Resolution is unauthenticated (the invitee has no account yet) and
	// takes the raw token in the path: strict IP limit against guessing.
	resolveHandler := &InviteResolveHandler{InviteService: r.InviteService}
	r.Mux.Handle("GET /v1/invites/{token}",
		httpx.Chain(resolveHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	acceptHandler := &InviteAcceptHandler{InviteService: r.InviteService}
	r.Mux.Handle("POST /v1/invites/{token}/accept",
		httpx.Chain(acceptHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerDocuments() {
	h := &DocumentHandler{Autosave: r.AutosaveManager}

	authed := func(handler http.Handler, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("GET /v1/documents/{id}", authed(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	// Section edits are the hot path: a typing user produces many.
	r.Mux.Handle("PUT /v1/documents/{id}/sections/{key}", authed(http.HandlerFunc(h.HandlePutSection), httpx.LenientLimit))
	r.Mux.Handle("POST /v1/documents/{id}/flush", authed(http.HandlerFunc(h.HandleFlush), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/documents/{id}/status", authed(http.HandlerFunc(h.HandleStatus), httpx.LenientLimit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
