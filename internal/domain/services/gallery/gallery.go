package gallery

import (
	"context"

	"lumina/internal/domain/models/gallery"
)

// GalleryService handles gallery lifecycle. Kept minimal: the folder
// hierarchy needs a container to anchor ownership checks, nothing more.
type GalleryService interface {
	// CreateGallery creates a gallery owned by the caller
	CreateGallery(ctx context.Context, userID string, req *CreateGalleryRequest) (*gallery.Gallery, error)

	// GetGallery retrieves a gallery the caller may view
	GetGallery(ctx context.Context, userID, galleryID string) (*gallery.Gallery, error)

	// ListGalleries lists the caller's galleries
	ListGalleries(ctx context.Context, userID string) ([]gallery.Gallery, error)
}

// CreateGalleryRequest represents a gallery creation request
type CreateGalleryRequest struct {
	Name     string `json:"name"`
	IsPublic bool   `json:"is_public"`
}
