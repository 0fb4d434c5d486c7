package auth

import (
	"context"
	"fmt"

	"lumina/internal/domain"
	galleryRepo "lumina/internal/domain/repositories/gallery"
)

// OwnerBasedAuthorizer implements GalleryAuthorizer using ownership
// checks: a user may manage a gallery they own, and may view a gallery
// they own or one marked public. Folder access is resolved through the
// folder's gallery.
//
// This is the simplest authorization model. For future extensibility:
// - RoleBasedAuthorizer: per-gallery collaborator roles
// - SharingAuthorizer: share links with scoped view access
type OwnerBasedAuthorizer struct {
	galleries galleryRepo.GalleryRepository
	folders   galleryRepo.FolderRepository
}

// NewOwnerBasedAuthorizer creates a new ownership-based authorizer
func NewOwnerBasedAuthorizer(
	galleries galleryRepo.GalleryRepository,
	folders galleryRepo.FolderRepository,
) *OwnerBasedAuthorizer {
	return &OwnerBasedAuthorizer{
		galleries: galleries,
		folders:   folders,
	}
}

// CanManageGallery checks if the user owns the gallery
func (a *OwnerBasedAuthorizer) CanManageGallery(ctx context.Context, userID, galleryID string) error {
	g, err := a.galleries.GetByID(ctx, galleryID)
	if err != nil {
		return err
	}
	if g.OwnerID != userID {
		return fmt.Errorf("access denied to gallery %s: %w", galleryID, domain.ErrForbidden)
	}
	return nil
}

// CanViewGallery checks if the user owns the gallery or the gallery is public
func (a *OwnerBasedAuthorizer) CanViewGallery(ctx context.Context, userID, galleryID string) error {
	g, err := a.galleries.GetByID(ctx, galleryID)
	if err != nil {
		return err
	}
	if g.OwnerID != userID && !g.IsPublic {
		return fmt.Errorf("access denied to gallery %s: %w", galleryID, domain.ErrForbidden)
	}
	return nil
}

// CanManageFolder checks if the user owns the gallery that owns the folder
func (a *OwnerBasedAuthorizer) CanManageFolder(ctx context.Context, userID, folderID string) error {
	folder, err := a.folders.GetByID(ctx, folderID)
	if err != nil {
		return err
	}
	return a.CanManageGallery(ctx, userID, folder.GalleryID)
}

// CanViewFolder checks if the user may view the folder's gallery
func (a *OwnerBasedAuthorizer) CanViewFolder(ctx context.Context, userID, folderID string) error {
	folder, err := a.folders.GetByID(ctx, folderID)
	if err != nil {
		return err
	}
	return a.CanViewGallery(ctx, userID, folder.GalleryID)
}
