package gallery

import (
	"context"

	"lumina/internal/domain/models/gallery"
)

// GalleryRepository defines data access operations for galleries
type GalleryRepository interface {
	// Create creates a new gallery
	Create(ctx context.Context, g *gallery.Gallery) error

	// GetByID retrieves a gallery by ID regardless of owner
	GetByID(ctx context.Context, id string) (*gallery.Gallery, error)

	// GetByIDForOwner retrieves a gallery by ID, scoped to its owner.
	// Returns domain.ErrNotFound when the gallery exists but belongs to
	// someone else, so callers cannot probe for foreign gallery IDs.
	GetByIDForOwner(ctx context.Context, id, ownerID string) (*gallery.Gallery, error)

	// ListByOwner retrieves all galleries owned by a user, ordered by
	// most recently updated first
	ListByOwner(ctx context.Context, ownerID string) ([]gallery.Gallery, error)

	// LockForUpdate takes a row lock on the gallery for the duration of
	// the surrounding transaction. Structural mutations lock the gallery
	// first so no two of them interleave on the same folder tree.
	LockForUpdate(ctx context.Context, id string) error
}
