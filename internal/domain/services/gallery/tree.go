package gallery

import (
	"context"

	"lumina/internal/domain/models/gallery"
)

// TreeService defines read-side traversal over a gallery's folder tree,
// shared by API responses and the move operation's cycle check.
type TreeService interface {
	// GetGalleryTree builds the nested folder/photo tree for a gallery.
	// userID is used for the view-access check.
	GetGalleryTree(ctx context.Context, userID, galleryID string) (*gallery.Tree, error)

	// DescendantIDs returns the set of all folders transitively beneath
	// rootFolderID (the folder itself excluded). Only membership
	// matters; callers use it to answer "is X a descendant of Y".
	// No authorization check: callers are expected to have authorized
	// the root folder already.
	DescendantIDs(ctx context.Context, rootFolderID string) (map[string]struct{}, error)
}
