package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/SadidSD/Productive-Workspace/internal/workspace/autosave"
	"github.com/SadidSD/Productive-Workspace/pkg/httpx"
	"github.com/SadidSD/Productive-Workspace/pkg/slogx"
	"github.com/SadidSD/Productive-Workspace/pkg/worksdk"
)

// maxSectionBodySize caps a single section payload at 1 MiB.
const maxSectionBodySize = 1 << 20

// DocumentHandler serves the document read and autosave endpoints.
type DocumentHandler struct {
	Autosave *autosave.Manager
}

// requireOwner rejects requests where the authenticated user is not the
// document owner named in the path. Documents are strictly per-user.
func requireOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID := r.PathValue("id")

	user, ok := httpx.UserFromCtx(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return "", false
	}
	if user.ID != ownerID {
		httpx.WriteError(w, http.StatusForbidden, "access_denied", "You may only access your own document")
		return "", false
	}
	return ownerID, true
}

// HandleGet godoc
//
//	@Summary		Get Document Endpoint
//	@Description	Return the persisted sections of a document. A document that was never saved reads back empty.
//	@Tags			Documents
//	@Produce		json
//	@Param			id	path		string						true	"Document owner ID"
//	@Success		200	{object}	worksdk.DocumentResponse	"owner_id, sections, updated_at"
//	@Failure		401	{object}	worksdk.ErrorResponse		"error, error_description"
//	@Failure		403	{object}	worksdk.ErrorResponse		"error, error_description"
//	@Failure		500	{object}	worksdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/documents/{id} [get].
func (h *DocumentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	doc, err := h.Autosave.Document(ctx, ownerID)
	if err != nil {
		log.Error("failed to fetch document", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to fetch document")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, worksdk.DocumentResponse{
		OwnerID:   doc.OwnerID,
		Sections:  doc.Sections,
		UpdatedAt: doc.UpdatedAt,
	})
}

// HandlePutSection godoc
//
//	@Summary		Edit Document Section Endpoint
//	@Description	Replace one section of the document's draft. Sibling sections are untouched. The edit is
//	@Description	debounced server-side; the response reports the draft state, not a completed save.
//	@Tags			Documents
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Document owner ID"
//	@Param			key		path		string						true	"Section key"
//	@Param			value	body		object						true	"Section content (opaque JSON)"
//	@Success		202		{object}	worksdk.SaveStatusResponse	"status, save_failed, last_saved_at"
//	@Failure		400		{object}	worksdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	worksdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	worksdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	worksdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/documents/{id}/sections/{key} [put].
func (h *DocumentHandler) HandlePutSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}
	key := r.PathValue("key")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSectionBodySize))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Section payload too large or unreadable")
		return
	}

	if err := h.Autosave.ApplyEdit(ctx, ownerID, key, body); err != nil {
		if errors.Is(err, autosave.ErrInvalidSection) {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Section payload is not valid for this key")
			return
		}
		log.Error("failed to apply section edit", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to apply edit")
		return
	}

	state, err := h.Autosave.Status(ctx, ownerID)
	if err != nil {
		log.Error("failed to read save status", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to read save status")
		return
	}

	httpx.WriteJSON(w, http.StatusAccepted, saveStatusResponse(state))
}

// HandleFlush godoc
//
//	@Summary		Flush Document Endpoint
//	@Description	Persist the document's draft immediately instead of waiting out the autosave quiet period.
//	@Tags			Documents
//	@Produce		json
//	@Param			id	path		string						true	"Document owner ID"
//	@Success		200	{object}	worksdk.SaveStatusResponse	"status, save_failed, last_saved_at"
//	@Failure		401	{object}	worksdk.ErrorResponse		"error, error_description"
//	@Failure		403	{object}	worksdk.ErrorResponse		"error, error_description"
//	@Failure		500	{object}	worksdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/documents/{id}/flush [post].
func (h *DocumentHandler) HandleFlush(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	state, err := h.Autosave.Flush(ctx, ownerID)
	if err != nil {
		log.Error("failed to flush document", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to flush document")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, saveStatusResponse(state))
}

// HandleStatus godoc
//
//	@Summary		Document Save Status Endpoint
//	@Description	Report the save state of a document: saved, unsaved or saving, plus whether the last persist failed.
//	@Tags			Documents
//	@Produce		json
//	@Param			id	path		string						true	"Document owner ID"
//	@Success		200	{object}	worksdk.SaveStatusResponse	"status, save_failed, last_saved_at"
//	@Failure		401	{object}	worksdk.ErrorResponse		"error, error_description"
//	@Failure		403	{object}	worksdk.ErrorResponse		"error, error_description"
//	@Failure		500	{object}	worksdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/documents/{id}/status [get].
func (h *DocumentHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	state, err := h.Autosave.Status(ctx, ownerID)
	if err != nil {
		log.Error("failed to read save status", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to read save status")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, saveStatusResponse(state))
}

func saveStatusResponse(state autosave.State) worksdk.SaveStatusResponse {
	resp := worksdk.SaveStatusResponse{
		Status:     string(state.Status),
		SaveFailed: state.SaveFailed,
	}
	if !state.LastSavedAt.IsZero() {
		t := state.LastSavedAt
		resp.LastSavedAt = &t
	}
	return resp
}
