package handler

import (
	"log/slog"
	"net/http"

	"lumina/internal/domain/models/gallery"
	gallerySvc "lumina/internal/domain/services/gallery"
	"lumina/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService gallerySvc.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService gallerySvc.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// updateFolderRequest is the PATCH body. parent_id is tri-state: absent
// means no move, null means move to the gallery root, an id means move
// under that folder.
type updateFolderRequest struct {
	Name     *string                 `json:"name,omitempty"`
	ParentID httputil.OptionalString `json:"parent_id,omitempty"`
}

// setCoverRequest is the cover assignment body; null photo_id clears the cover
type setCoverRequest struct {
	PhotoID *string `json:"photo_id"`
}

// CreateFolder creates a new folder
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req gallerySvc.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.folderService.CreateFolder(r.Context(), userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// GetFolder retrieves a folder with its children, photos and gallery summary
// GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID is required")
		return
	}

	contents, err := h.folderService.GetFolder(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contents)
}

// UpdateFolder renames and/or moves a folder
// PATCH /api/folders/{id}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID is required")
		return
	}

	var req updateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == nil && !req.ParentID.Present {
		httputil.RespondError(w, http.StatusBadRequest, "at least one of name or parent_id must be provided")
		return
	}

	var updated *gallery.Folder
	var err error

	if req.Name != nil {
		updated, err = h.folderService.RenameFolder(r.Context(), userID, id, *req.Name)
		if err != nil {
			handleError(w, err)
			return
		}
	}

	if req.ParentID.Present {
		updated, err = h.folderService.MoveFolder(r.Context(), userID, id, req.ParentID.Value)
		if err != nil {
			handleError(w, err)
			return
		}
	}

	httputil.RespondJSON(w, http.StatusOK, updated)
}

// SetCover assigns or clears the folder's cover photo
// PUT /api/folders/{id}/cover
func (h *FolderHandler) SetCover(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID is required")
		return
	}

	var req setCoverRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.folderService.SetCoverPhoto(r.Context(), userID, id, req.PhotoID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder deletes a folder and its entire subtree
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder ID is required")
		return
	}

	if err := h.folderService.DeleteFolder(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
