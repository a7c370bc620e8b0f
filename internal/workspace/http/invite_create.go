package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/domain"
	"github.com/SadidSD/Productive-Workspace/internal/workspace/service"
	"github.com/SadidSD/Productive-Workspace/pkg/httpx"
	"github.com/SadidSD/Productive-Workspace/pkg/slogx"
	"github.com/SadidSD/Productive-Workspace/pkg/worksdk"
)

type InviteCreateHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Create Workspace Invite Endpoint
//	@Description	Mint a single-use invite token into a workspace. Requires an admin or owner membership.
//	@Description	The raw token appears only in this response; the service stores a fingerprint.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Workspace ID"
//	@Param			request	body		worksdk.CreateInviteRequest		true	"Invite request"
//	@Success		201		{object}	worksdk.CreateInviteResponse	"invite_id, workspace_id, invite_token, role, expires_at"
//	@Failure		400		{object}	worksdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	worksdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	worksdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	worksdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{id}/invites [post].
func (h *InviteCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	workspaceID := r.PathValue("id")

	var req worksdk.CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.Role == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "role is required")
		return
	}

	user, ok := httpx.UserFromCtx(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	ttl := time.Duration(req.TTLSeconds) * time.Second

	token, invite, err := h.InviteService.CreateInvite(
		ctx,
		workspaceID,
		user.ID,
		domain.Role(req.Role),
		req.Email,
		ttl,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid role")
		case errors.Is(err, service.ErrInvalidInviteRequest):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid invite parameters")
		case errors.Is(err, service.ErrNotAllowed):
			httpx.WriteError(w, http.StatusForbidden, "access_denied", "Only workspace admins and owners may invite")
		default:
			log.Error("failed to create invite", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to create invite")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, worksdk.CreateInviteResponse{
		InviteID:    invite.ID,
		WorkspaceID: invite.WorkspaceID,
		InviteToken: token,
		Role:        string(invite.Role),
		ExpiresAt:   invite.ExpiresAt,
	})
}
