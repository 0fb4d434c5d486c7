package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"lumina/internal/config"
	"lumina/internal/domain"
	models "lumina/internal/domain/models/gallery"
	galleryRepo "lumina/internal/domain/repositories/gallery"
	"lumina/internal/domain/services"
	gallerySvc "lumina/internal/domain/services/gallery"
)

type galleryService struct {
	galleryRepo galleryRepo.GalleryRepository
	authorizer  services.GalleryAuthorizer
	logger      *slog.Logger
}

// NewGalleryService creates a new gallery service
func NewGalleryService(
	repo galleryRepo.GalleryRepository,
	authorizer services.GalleryAuthorizer,
	logger *slog.Logger,
) gallerySvc.GalleryService {
	return &galleryService{
		galleryRepo: repo,
		authorizer:  authorizer,
		logger:      logger,
	}
}

// CreateGallery creates a gallery owned by the caller
func (s *galleryService) CreateGallery(ctx context.Context, userID string, req *gallerySvc.CreateGalleryRequest) (*models.Gallery, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxGalleryNameLength)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	g := &models.Gallery{
		OwnerID:   userID,
		Name:      strings.TrimSpace(req.Name),
		IsPublic:  req.IsPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.galleryRepo.Create(ctx, g); err != nil {
		return nil, err
	}

	s.logger.Info("gallery created",
		"id", g.ID,
		"name", g.Name,
		"owner_id", g.OwnerID,
	)

	return g, nil
}

// GetGallery retrieves a gallery the caller may view
func (s *galleryService) GetGallery(ctx context.Context, userID, galleryID string) (*models.Gallery, error) {
	if err := s.authorizer.CanViewGallery(ctx, userID, galleryID); err != nil {
		return nil, err
	}
	return s.galleryRepo.GetByID(ctx, galleryID)
}

// ListGalleries lists the caller's galleries
func (s *galleryService) ListGalleries(ctx context.Context, userID string) ([]models.Gallery, error) {
	return s.galleryRepo.ListByOwner(ctx, userID)
}
