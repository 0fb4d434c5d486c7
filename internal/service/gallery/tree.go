package gallery

import (
	"context"
	"log/slog"

	models "lumina/internal/domain/models/gallery"
	galleryRepo "lumina/internal/domain/repositories/gallery"
	"lumina/internal/domain/services"
	gallerySvc "lumina/internal/domain/services/gallery"
)

// treeService implements the TreeService interface
type treeService struct {
	folderRepo galleryRepo.FolderRepository
	photoRepo  galleryRepo.PhotoRepository
	authorizer services.GalleryAuthorizer
	logger     *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	folderRepo galleryRepo.FolderRepository,
	photoRepo galleryRepo.PhotoRepository,
	authorizer services.GalleryAuthorizer,
	logger *slog.Logger,
) gallerySvc.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		photoRepo:  photoRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

// GetGalleryTree builds and returns the nested folder/photo tree for a
// gallery. The tree is built from the flat folder list in three passes,
// so it works to arbitrary depth without per-level queries.
func (s *treeService) GetGalleryTree(ctx context.Context, userID, galleryID string) (*models.Tree, error) {
	if err := s.authorizer.CanViewGallery(ctx, userID, galleryID); err != nil {
		return nil, err
	}

	// Get all folders in the gallery, in creation order
	allFolders, err := s.folderRepo.ListByGallery(ctx, galleryID)
	if err != nil {
		return nil, err
	}

	// Get all photos in the gallery (metadata only), capture-time order
	allPhotos, err := s.photoRepo.ListByGallery(ctx, galleryID)
	if err != nil {
		return nil, err
	}

	// First pass: create all folder nodes
	folderMap := make(map[string]*models.FolderTreeNode, len(allFolders))
	var rootFolderIDs []string

	for _, folder := range allFolders {
		folderMap[folder.ID] = &models.FolderTreeNode{
			ID:           folder.ID,
			Name:         folder.Name,
			ParentID:     folder.ParentID,
			CoverPhotoID: folder.CoverPhotoID,
			CreatedAt:    folder.CreatedAt,
			Folders:      []*models.FolderTreeNode{},
			Photos:       []models.PhotoTreeNode{},
		}
	}

	// Second pass: nest folders by connecting children to parents.
	// Folders arrive in creation order, so sibling order is preserved.
	for _, folder := range allFolders {
		node := folderMap[folder.ID]
		if folder.ParentID == nil {
			rootFolderIDs = append(rootFolderIDs, folder.ID)
		} else {
			if parent, exists := folderMap[*folder.ParentID]; exists {
				parent.Folders = append(parent.Folders, node)
			}
		}
	}

	// Third pass: add photos to their folders
	for _, photo := range allPhotos {
		if parent, exists := folderMap[photo.FolderID]; exists {
			parent.Photos = append(parent.Photos, models.PhotoTreeNode{
				ID:       photo.ID,
				FileName: photo.FileName,
				FolderID: photo.FolderID,
				TakenAt:  photo.TakenAt,
			})
		}
	}

	rootFolders := make([]*models.FolderTreeNode, 0, len(rootFolderIDs))
	for _, folderID := range rootFolderIDs {
		rootFolders = append(rootFolders, folderMap[folderID])
	}

	tree := &models.Tree{
		GalleryID: galleryID,
		Folders:   rootFolders,
	}

	s.logger.Info("gallery tree built",
		"gallery_id", galleryID,
		"folder_count", len(allFolders),
		"photo_count", len(allPhotos),
	)

	return tree, nil
}

// DescendantIDs returns the set of all folders transitively beneath
// rootFolderID, the folder itself excluded. The traversal is a worklist
// over the children relation guarded by a visited set, so it terminates
// even if the parent graph is transiently cyclic.
func (s *treeService) DescendantIDs(ctx context.Context, rootFolderID string) (map[string]struct{}, error) {
	descendants := make(map[string]struct{})
	seen := map[string]struct{}{rootFolderID: {}}
	worklist := []string{rootFolderID}

	for len(worklist) > 0 {
		current := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		children, err := s.folderRepo.ListChildren(ctx, current)
		if err != nil {
			return nil, err
		}

		for _, child := range children {
			if _, visited := seen[child.ID]; visited {
				continue
			}
			seen[child.ID] = struct{}{}
			descendants[child.ID] = struct{}{}
			worklist = append(worklist, child.ID)
		}
	}

	return descendants, nil
}
