package gallery

import (
	"context"

	"lumina/internal/domain/models/gallery"
)

// PhotoRepository is the folder subsystem's view of the photo directory.
// Listing is ordered by capture time, falling back to creation time when
// capture time is absent, both ascending.
type PhotoRepository interface {
	// Create registers a photo in a folder (used by seeding and import;
	// binary upload lives outside this service)
	Create(ctx context.Context, photo *gallery.Photo) error

	// GetByID retrieves a photo by ID
	GetByID(ctx context.Context, id string) (*gallery.Photo, error)

	// ListByFolder lists the photos directly owned by a folder
	ListByFolder(ctx context.Context, folderID string) ([]gallery.Photo, error)

	// ListByGallery lists every photo owned by any folder of a gallery
	ListByGallery(ctx context.Context, galleryID string) ([]gallery.Photo, error)

	// ExistsInFolder reports whether the photo exists and is owned by
	// exactly this folder
	ExistsInFolder(ctx context.Context, photoID, folderID string) (bool, error)
}
