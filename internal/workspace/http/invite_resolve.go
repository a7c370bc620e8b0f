package http

import (
	"errors"
	"net/http"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/service"
	"github.com/SadidSD/Productive-Workspace/pkg/httpx"
	"github.com/SadidSD/Productive-Workspace/pkg/slogx"
	"github.com/SadidSD/Productive-Workspace/pkg/worksdk"
)

type InviteResolveHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Resolve Invite Endpoint
//	@Description	Look up a pending invite by its raw token, for the join page. No side effects.
//	@Description	Unknown, already-used and expired tokens all return the same invalid_grant answer.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	path		string							true	"Invite token"
//	@Success		200		{object}	worksdk.ResolveInviteResponse	"workspace_id, role, email, expires_at"
//	@Failure		400		{object}	worksdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	worksdk.ErrorResponse			"error, error_description"
//	@Router			/v1/invites/{token} [get].
func (h *InviteResolveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	invite, err := h.InviteService.Resolve(ctx, r.PathValue("token"))
	if err != nil {
		if errors.Is(err, service.ErrInviteNotFound) {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_grant", "Invite is invalid or expired")
			return
		}
		log.Error("failed to resolve invite", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to resolve invite")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, worksdk.ResolveInviteResponse{
		WorkspaceID: invite.WorkspaceID,
		Role:        string(invite.Role),
		Email:       invite.Email,
		ExpiresAt:   invite.ExpiresAt,
	})
}
