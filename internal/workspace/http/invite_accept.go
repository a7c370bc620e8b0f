package http

import (
	"errors"
	"net/http"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/service"
	"github.com/SadidSD/Productive-Workspace/pkg/httpx"
	"github.com/SadidSD/Productive-Workspace/pkg/slogx"
	"github.com/SadidSD/Productive-Workspace/pkg/worksdk"
)

type InviteAcceptHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Accept Invite Endpoint
//	@Description	Consume an invite token and join the authenticated user to the invite's workspace at the invite's role.
//	@Description	A repeat accept by the user who already joined succeeds idempotently; any other
//	@Description	user on a consumed token is rejected. Unknown and expired tokens return invalid_grant.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	path		string							true	"Invite token"
//	@Success		200		{object}	worksdk.AcceptInviteResponse	"workspace_id"
//	@Failure		400		{object}	worksdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	worksdk.ErrorResponse			"error, error_description"
//	@Failure		409		{object}	worksdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	worksdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invites/{token}/accept [post].
func (h *InviteAcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := httpx.UserFromCtx(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	workspaceID, err := h.InviteService.Accept(ctx, r.PathValue("token"), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_grant", "Invite is invalid or expired")
		case errors.Is(err, service.ErrInviteAlreadyUsed):
			httpx.WriteError(w, http.StatusConflict, "invite_used", "Invite has already been used")
		case errors.Is(err, service.ErrInvalidInviteRequest):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid invite parameters")
		default:
			log.Error("failed to accept invite", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to accept invite")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, worksdk.AcceptInviteResponse{
		WorkspaceID: workspaceID,
	})
}
