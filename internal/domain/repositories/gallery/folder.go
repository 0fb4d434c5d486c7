package gallery

import (
	"context"

	"lumina/internal/domain/models/gallery"
)

// FolderRepository defines data access operations for folders.
// It is the single source of truth for the tree; cycle-safety of
// reparenting is the service layer's responsibility, not this one's.
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *gallery.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id string) (*gallery.Folder, error)

	// ListRoots lists a gallery's root folders in creation order
	ListRoots(ctx context.Context, galleryID string) ([]gallery.Folder, error)

	// ListChildren lists immediate child folders in creation order
	ListChildren(ctx context.Context, parentID string) ([]gallery.Folder, error)

	// ListByGallery retrieves all folders in a gallery (flat list,
	// creation order)
	ListByGallery(ctx context.Context, galleryID string) ([]gallery.Folder, error)

	// Rename updates the folder's display name
	Rename(ctx context.Context, id, name string) (*gallery.Folder, error)

	// SetCover updates the folder's cover photo reference; nil clears it
	SetCover(ctx context.Context, id string, photoID *string) (*gallery.Folder, error)

	// Reparent performs the raw parent pointer update; nil moves the
	// folder to the gallery root
	Reparent(ctx context.Context, id string, parentID *string) (*gallery.Folder, error)

	// DeleteSubtree removes the folder, every descendant folder, and
	// every photo owned by any folder in that subtree, as one atomic
	// unit. Call it inside a transaction.
	DeleteSubtree(ctx context.Context, id string) error
}
