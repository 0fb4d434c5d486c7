package handler

import (
	"log/slog"
	"net/http"

	gallerySvc "lumina/internal/domain/services/gallery"
	"lumina/internal/httputil"
)

// GalleryHandler handles gallery HTTP requests
type GalleryHandler struct {
	galleryService gallerySvc.GalleryService
	logger         *slog.Logger
}

// NewGalleryHandler creates a new gallery handler
func NewGalleryHandler(galleryService gallerySvc.GalleryService, logger *slog.Logger) *GalleryHandler {
	return &GalleryHandler{
		galleryService: galleryService,
		logger:         logger,
	}
}

// CreateGallery creates a new gallery owned by the caller
// POST /api/galleries
func (h *GalleryHandler) CreateGallery(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req gallerySvc.CreateGalleryRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.galleryService.CreateGallery(r.Context(), userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, g)
}

// GetGallery retrieves a gallery by ID
// GET /api/galleries/{id}
func (h *GalleryHandler) GetGallery(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "gallery ID is required")
		return
	}

	g, err := h.galleryService.GetGallery(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, g)
}

// ListGalleries lists the caller's galleries
// GET /api/galleries
func (h *GalleryHandler) ListGalleries(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	galleries, err := h.galleryService.ListGalleries(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, galleries)
}

// HealthCheck reports process liveness
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
