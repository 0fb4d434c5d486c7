package services

import "context"

// GalleryAuthorizer checks if a caller may act on galleries and folders.
// Current implementation: ownership-based (photographer owns gallery),
// with public galleries viewable by anyone.
//
// Design principle: services call the authorizer before operating on a
// resource. This separates authorization (who can act) from
// identification (which resource).
type GalleryAuthorizer interface {
	// CanManageGallery checks if the user owns the gallery
	CanManageGallery(ctx context.Context, userID, galleryID string) error

	// CanViewGallery checks if the user owns the gallery or the gallery
	// is public
	CanViewGallery(ctx context.Context, userID, galleryID string) error

	// CanManageFolder checks if the user owns the gallery that owns the
	// folder
	CanManageFolder(ctx context.Context, userID, folderID string) error

	// CanViewFolder checks if the user may view the folder's gallery
	CanViewFolder(ctx context.Context, userID, folderID string) error
}
