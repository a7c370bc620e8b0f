package http

import (
	"errors"
	"net/http"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/service"
	"github.com/SadidSD/Productive-Workspace/pkg/httpx"
	"github.com/SadidSD/Productive-Workspace/pkg/slogx"
	"github.com/SadidSD/Productive-Workspace/pkg/worksdk"
)

type WorkspaceMembersHandler struct {
	WorkspaceService *service.WorkspaceService
}

// ServeHTTP godoc
//
//	@Summary		List Workspace Members Endpoint
//	@Description	List the members of a workspace, oldest first. The caller must be a member of the workspace.
//	@Tags			Workspaces
//	@Produce		json
//	@Param			id	path		string					true	"Workspace ID"
//	@Success		200	{object}	worksdk.MembersResponse	"workspace_id, members"
//	@Failure		401	{object}	worksdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	worksdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	worksdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/workspaces/{id}/members [get].
func (h *WorkspaceMembersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	workspaceID := r.PathValue("id")

	user, ok := httpx.UserFromCtx(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	members, err := h.WorkspaceService.Members(ctx, workspaceID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWorkspaceRequest):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid workspace id")
		case errors.Is(err, service.ErrNotMember):
			httpx.WriteError(w, http.StatusForbidden, "access_denied", "You are not a member of this workspace")
		default:
			log.Error("failed to list workspace members", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to list members")
		}
		return
	}

	resp := worksdk.MembersResponse{
		WorkspaceID: workspaceID,
		Members:     make([]worksdk.MemberResponse, 0, len(members)),
	}
	for _, m := range members {
		resp.Members = append(resp.Members, worksdk.MemberResponse{
			UserID:   m.UserID,
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
