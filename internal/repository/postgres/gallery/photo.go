package gallery

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"lumina/internal/domain"
	models "lumina/internal/domain/models/gallery"
	galleryRepo "lumina/internal/domain/repositories/gallery"
	"lumina/internal/repository/postgres"
)

// PostgresPhotoRepository implements the PhotoRepository interface
type PostgresPhotoRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(config *postgres.RepositoryConfig) galleryRepo.PhotoRepository {
	return &PostgresPhotoRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const photoColumns = "id, folder_id, file_name, taken_at, created_at, updated_at"

// Create registers a photo in a folder
func (r *PostgresPhotoRepository) Create(ctx context.Context, photo *models.Photo) error {
	if photo.ID == "" {
		photo.ID = uuid.New().String()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, folder_id, file_name, taken_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, r.tables.Photos)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		photo.ID,
		photo.FolderID,
		photo.FileName,
		photo.TakenAt,
		photo.CreatedAt,
		photo.UpdatedAt,
	).Scan(&photo.CreatedAt, &photo.UpdatedAt)

	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("folder %s: %w", photo.FolderID, domain.ErrNotFound)
		}
		return postgres.WrapQueryError("create photo", err)
	}

	return nil
}

// GetByID retrieves a photo by ID
func (r *PostgresPhotoRepository) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1
	`, photoColumns, r.tables.Photos)

	executor := postgres.GetExecutor(ctx, r.pool)
	var photo models.Photo
	err := executor.QueryRow(ctx, query, id).Scan(
		&photo.ID,
		&photo.FolderID,
		&photo.FileName,
		&photo.TakenAt,
		&photo.CreatedAt,
		&photo.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("photo %s: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.WrapQueryError("get photo", err)
	}

	return &photo, nil
}

// ListByFolder lists the photos directly owned by a folder, ordered by
// capture time with creation time as the fallback, both ascending
func (r *PostgresPhotoRepository) ListByFolder(ctx context.Context, folderID string) ([]models.Photo, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE folder_id = $1
		ORDER BY COALESCE(taken_at, created_at) ASC, id ASC
	`, photoColumns, r.tables.Photos)

	return r.queryPhotos(ctx, query, folderID)
}

// ListByGallery lists every photo owned by any folder of a gallery
func (r *PostgresPhotoRepository) ListByGallery(ctx context.Context, galleryID string) ([]models.Photo, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.folder_id, p.file_name, p.taken_at, p.created_at, p.updated_at
		FROM %s p
		JOIN %s f ON f.id = p.folder_id
		WHERE f.gallery_id = $1
		ORDER BY COALESCE(p.taken_at, p.created_at) ASC, p.id ASC
	`, r.tables.Photos, r.tables.Folders)

	return r.queryPhotos(ctx, query, galleryID)
}

// ExistsInFolder reports whether the photo exists and is owned by
// exactly this folder
func (r *PostgresPhotoRepository) ExistsInFolder(ctx context.Context, photoID, folderID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1 AND folder_id = $2)
	`, r.tables.Photos)

	var exists bool
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, photoID, folderID).Scan(&exists); err != nil {
		return false, postgres.WrapQueryError("check photo membership", err)
	}

	return exists, nil
}

func (r *PostgresPhotoRepository) queryPhotos(ctx context.Context, query string, arg string) ([]models.Photo, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, arg)
	if err != nil {
		return nil, postgres.WrapQueryError("list photos", err)
	}
	defer rows.Close()

	photos := []models.Photo{}
	for rows.Next() {
		var photo models.Photo
		err := rows.Scan(
			&photo.ID,
			&photo.FolderID,
			&photo.FileName,
			&photo.TakenAt,
			&photo.CreatedAt,
			&photo.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, photo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photos: %w", err)
	}

	return photos, nil
}
