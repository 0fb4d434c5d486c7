package gallery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"lumina/internal/config"
	"lumina/internal/domain"
	models "lumina/internal/domain/models/gallery"
	"lumina/internal/domain/repositories"
	galleryRepo "lumina/internal/domain/repositories/gallery"
	"lumina/internal/domain/services"
	gallerySvc "lumina/internal/domain/services/gallery"
)

type folderService struct {
	folderRepo  galleryRepo.FolderRepository
	photoRepo   galleryRepo.PhotoRepository
	galleryRepo galleryRepo.GalleryRepository
	tree        gallerySvc.TreeService
	txManager   repositories.TransactionManager
	authorizer  services.GalleryAuthorizer
	logger      *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo galleryRepo.FolderRepository,
	photoRepo galleryRepo.PhotoRepository,
	galleryRepository galleryRepo.GalleryRepository,
	tree gallerySvc.TreeService,
	txManager repositories.TransactionManager,
	authorizer services.GalleryAuthorizer,
	logger *slog.Logger,
) gallerySvc.FolderService {
	return &folderService{
		folderRepo:  folderRepo,
		photoRepo:   photoRepo,
		galleryRepo: galleryRepository,
		tree:        tree,
		txManager:   txManager,
		authorizer:  authorizer,
		logger:      logger,
	}
}

// CreateFolder creates a new folder, optionally nested under an existing
// folder of the same gallery. The name defaults when omitted; the store
// rejects parents from other galleries.
func (s *folderService) CreateFolder(ctx context.Context, userID string, req *gallerySvc.CreateFolderRequest) (*models.Folder, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.authorizer.CanManageGallery(ctx, userID, req.GalleryID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = models.DefaultFolderName
	}

	now := time.Now()
	folder := &models.Folder{
		GalleryID: req.GalleryID,
		ParentID:  req.ParentID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"gallery_id", folder.GalleryID,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// GetFolder retrieves a folder with its children, photos and the owning
// gallery's summary
func (s *folderService) GetFolder(ctx context.Context, userID, folderID string) (*gallerySvc.FolderContents, error) {
	if err := s.authorizer.CanViewFolder(ctx, userID, folderID); err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}

	owning, err := s.galleryRepo.GetByID(ctx, folder.GalleryID)
	if err != nil {
		return nil, err
	}

	children, err := s.folderRepo.ListChildren(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("list child folders: %w", err)
	}

	photos, err := s.photoRepo.ListByFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("list folder photos: %w", err)
	}

	return &gallerySvc.FolderContents{
		Folder:  folder,
		Gallery: owning.Summarize(),
		Folders: children,
		Photos:  photos,
	}, nil
}

// RenameFolder updates a folder's display name
func (s *folderService) RenameFolder(ctx context.Context, userID, folderID, name string) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if err := validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxFolderNameLength),
	); err != nil {
		return nil, fmt.Errorf("%w: folder name: %v", domain.ErrValidation, err)
	}

	if err := s.authorizer.CanManageFolder(ctx, userID, folderID); err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.Rename(ctx, folderID, name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder renamed", "id", folder.ID, "name", folder.Name)

	return folder, nil
}

// MoveFolder reparents a folder; nil newParentID moves it to the gallery
// root. The descendant check and the pointer update run as one
// serializable unit: the owning gallery's row is locked for the whole
// transaction, so no concurrent structural mutation can slip between
// check and write.
func (s *folderService) MoveFolder(ctx context.Context, userID, folderID string, newParentID *string) (*models.Folder, error) {
	if err := s.authorizer.CanManageFolder(ctx, userID, folderID); err != nil {
		return nil, err
	}

	var moved *models.Folder
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		folder, err := s.folderRepo.GetByID(txCtx, folderID)
		if err != nil {
			return err
		}

		if err := s.galleryRepo.LockForUpdate(txCtx, folder.GalleryID); err != nil {
			return err
		}

		// Reload under the lock: a move committed just before we locked
		// would otherwise be invisible to the cycle check.
		folder, err = s.folderRepo.GetByID(txCtx, folderID)
		if err != nil {
			return err
		}

		if newParentID != nil {
			if err := s.validateMoveTarget(txCtx, folder, *newParentID); err != nil {
				return err
			}
		}

		moved, err = s.folderRepo.Reparent(txCtx, folderID, newParentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder moved",
		"id", moved.ID,
		"gallery_id", moved.GalleryID,
		"new_parent_id", moved.ParentID,
	)

	return moved, nil
}

// validateMoveTarget rejects self-parenting, targets outside the
// folder's gallery, and moves under the folder's own descendants. The
// descendant set is computed against the pre-move tree; checking after
// the pointer update could never observe a consistent state.
func (s *folderService) validateMoveTarget(ctx context.Context, folder *models.Folder, newParentID string) error {
	if newParentID == folder.ID {
		return &domain.StructuralError{
			Code:    domain.CodeSelfParenting,
			Message: fmt.Sprintf("folder %s cannot be its own parent", folder.ID),
		}
	}

	target, err := s.folderRepo.GetByID(ctx, newParentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.StructuralError{
				Code:    domain.CodeTargetNotFound,
				Message: fmt.Sprintf("target folder %s not found", newParentID),
			}
		}
		return err
	}
	if target.GalleryID != folder.GalleryID {
		return &domain.StructuralError{
			Code:    domain.CodeTargetNotFound,
			Message: fmt.Sprintf("target folder %s not found in gallery %s", newParentID, folder.GalleryID),
		}
	}

	descendants, err := s.tree.DescendantIDs(ctx, folder.ID)
	if err != nil {
		return fmt.Errorf("compute descendants: %w", err)
	}
	if _, isDescendant := descendants[newParentID]; isDescendant {
		return &domain.StructuralError{
			Code:    domain.CodeCyclicMove,
			Message: fmt.Sprintf("cannot move folder %s under its own descendant %s", folder.ID, newParentID),
		}
	}

	return nil
}

// SetCoverPhoto assigns the folder's cover photo; nil clears it. The
// store rejects photos that do not belong to this exact folder.
func (s *folderService) SetCoverPhoto(ctx context.Context, userID, folderID string, photoID *string) (*models.Folder, error) {
	if err := s.authorizer.CanManageFolder(ctx, userID, folderID); err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.SetCover(ctx, folderID, photoID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder cover updated",
		"id", folder.ID,
		"cover_photo_id", folder.CoverPhotoID,
	)

	return folder, nil
}

// DeleteFolder deletes a folder and everything beneath it: descendant
// folders and every photo they own, in one transaction.
func (s *folderService) DeleteFolder(ctx context.Context, userID, folderID string) error {
	if err := s.authorizer.CanManageFolder(ctx, userID, folderID); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		folder, err := s.folderRepo.GetByID(txCtx, folderID)
		if err != nil {
			return err
		}

		if err := s.galleryRepo.LockForUpdate(txCtx, folder.GalleryID); err != nil {
			return err
		}

		return s.folderRepo.DeleteSubtree(txCtx, folderID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", folderID)

	return nil
}

// validateCreateRequest validates a folder creation request. An empty
// name is allowed and replaced with the default.
func (s *folderService) validateCreateRequest(req *gallerySvc.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.GalleryID, validation.Required),
		validation.Field(&req.Name, validation.Length(0, config.MaxFolderNameLength)),
	)
}
