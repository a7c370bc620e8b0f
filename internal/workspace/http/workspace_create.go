package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/service"
	"github.com/SadidSD/Productive-Workspace/pkg/httpx"
	"github.com/SadidSD/Productive-Workspace/pkg/slogx"
	"github.com/SadidSD/Productive-Workspace/pkg/worksdk"
)

type WorkspaceCreateHandler struct {
	WorkspaceService *service.WorkspaceService
}

// ServeHTTP godoc
//
//	@Summary		Create Workspace Endpoint
//	@Description	Create a new workspace owned by the authenticated user. The creator receives an owner membership in the same transaction.
//	@Tags			Workspaces
//	@Accept			json
//	@Produce		json
//	@Param			request	body		worksdk.CreateWorkspaceRequest	true	"Workspace request"
//	@Success		201		{object}	worksdk.WorkspaceResponse		"id, name, slug, created_at"
//	@Failure		400		{object}	worksdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	worksdk.ErrorResponse			"error, error_description"
//	@Failure		409		{object}	worksdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	worksdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/workspaces [post].
func (h *WorkspaceCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req worksdk.CreateWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	user, ok := httpx.UserFromCtx(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	ws, err := h.WorkspaceService.Create(ctx, req.Name, req.Slug, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWorkspaceRequest):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid workspace name or slug")
		case errors.Is(err, service.ErrSlugTaken):
			httpx.WriteError(w, http.StatusConflict, "slug_taken", "A workspace with this slug already exists")
		default:
			log.Error("failed to create workspace", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to create workspace")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, worksdk.WorkspaceResponse{
		ID:        ws.ID,
		Name:      ws.Name,
		Slug:      ws.Slug,
		CreatedAt: ws.CreatedAt,
	})
}
