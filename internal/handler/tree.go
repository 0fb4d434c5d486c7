package handler

import (
	"log/slog"
	"net/http"

	gallerySvc "lumina/internal/domain/services/gallery"
	"lumina/internal/httputil"
)

// TreeHandler handles HTTP requests for tree operations
type TreeHandler struct {
	treeService gallerySvc.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService gallerySvc.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// GetTree returns the nested folder/photo tree for a gallery
// GET /api/galleries/{id}/tree
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	galleryID := r.PathValue("id")
	if galleryID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "gallery ID is required")
		return
	}

	userID := httputil.GetUserID(r)

	tree, err := h.treeService.GetGalleryTree(r.Context(), userID, galleryID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}
