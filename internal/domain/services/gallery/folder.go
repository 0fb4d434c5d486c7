package gallery

import (
	"context"

	"lumina/internal/domain/models/gallery"
)

// FolderService handles folder hierarchy business logic. It is the only
// component allowed to change tree shape; the invariants (same-gallery
// parents, acyclic parent graph, cover photo containment, cascading
// delete) are enforced here before anything reaches the store.
type FolderService interface {
	// CreateFolder creates a new folder, optionally nested under an
	// existing folder of the same gallery
	CreateFolder(ctx context.Context, userID string, req *CreateFolderRequest) (*gallery.Folder, error)

	// GetFolder retrieves a folder with its children, photos and the
	// owning gallery's summary
	GetFolder(ctx context.Context, userID, folderID string) (*FolderContents, error)

	// RenameFolder updates a folder's display name
	RenameFolder(ctx context.Context, userID, folderID, name string) (*gallery.Folder, error)

	// MoveFolder reparents a folder; nil newParentID moves it to the
	// gallery root. Rejects self-parenting and moves under the folder's
	// own descendants.
	MoveFolder(ctx context.Context, userID, folderID string, newParentID *string) (*gallery.Folder, error)

	// SetCoverPhoto assigns the folder's cover photo; nil clears it.
	// The photo must belong to this exact folder.
	SetCoverPhoto(ctx context.Context, userID, folderID string, photoID *string) (*gallery.Folder, error)

	// DeleteFolder deletes a folder and everything beneath it
	DeleteFolder(ctx context.Context, userID, folderID string) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	GalleryID string  `json:"gallery_id"`
	Name      string  `json:"name"`                // empty = DefaultFolderName
	ParentID  *string `json:"parent_id,omitempty"` // null for a root folder
}

// FolderContents is a folder with its immediate children, its photos,
// and a summary of the gallery that owns it
type FolderContents struct {
	Folder  *gallery.Folder  `json:"folder"`
	Gallery *gallery.Summary `json:"gallery"`
	Folders []gallery.Folder `json:"folders"`
	Photos  []gallery.Photo  `json:"photos"`
}
