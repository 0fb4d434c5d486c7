package gallery

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lumina/internal/domain"
	models "lumina/internal/domain/models/gallery"
	galleryRepo "lumina/internal/domain/repositories/gallery"
	"lumina/internal/repository/postgres"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *postgres.RepositoryConfig) galleryRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const folderColumns = "id, gallery_id, parent_id, name, cover_photo_id, created_at, updated_at"

// Create creates a new folder. When a parent is given it must already
// resolve to a folder in the same gallery.
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	executor := postgres.GetExecutor(ctx, r.pool)

	if folder.ParentID != nil {
		var parentGallery string
		query := fmt.Sprintf(`SELECT gallery_id FROM %s WHERE id = $1`, r.tables.Folders)
		err := executor.QueryRow(ctx, query, *folder.ParentID).Scan(&parentGallery)
		if err != nil {
			if postgres.IsPgNoRowsError(err) {
				return &domain.StructuralError{
					Code:    domain.CodeParentNotFound,
					Message: fmt.Sprintf("parent folder %s not found", *folder.ParentID),
				}
			}
			return postgres.WrapQueryError("resolve parent folder", err)
		}
		if parentGallery != folder.GalleryID {
			return &domain.StructuralError{
				Code:    domain.CodeParentNotFound,
				Message: fmt.Sprintf("parent folder %s not found in gallery %s", *folder.ParentID, folder.GalleryID),
			}
		}
	}

	if folder.ID == "" {
		folder.ID = uuid.New().String()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, gallery_id, parent_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, r.tables.Folders)

	err := executor.QueryRow(ctx, query,
		folder.ID,
		folder.GalleryID,
		folder.ParentID,
		folder.Name,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		return postgres.WrapQueryError("create folder", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1
	`, folderColumns, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	return r.scanFolder(executor.QueryRow(ctx, query, id), id)
}

// ListRoots lists a gallery's root folders in creation order
func (r *PostgresFolderRepository) ListRoots(ctx context.Context, galleryID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE gallery_id = $1 AND parent_id IS NULL
		ORDER BY created_at ASC, id ASC
	`, folderColumns, r.tables.Folders)

	return r.queryFolders(ctx, query, galleryID)
}

// ListChildren lists immediate child folders in creation order
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE parent_id = $1
		ORDER BY created_at ASC, id ASC
	`, folderColumns, r.tables.Folders)

	return r.queryFolders(ctx, query, parentID)
}

// ListByGallery retrieves all folders in a gallery (flat list, creation order)
func (r *PostgresFolderRepository) ListByGallery(ctx context.Context, galleryID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE gallery_id = $1
		ORDER BY created_at ASC, id ASC
	`, folderColumns, r.tables.Folders)

	return r.queryFolders(ctx, query, galleryID)
}

// Rename updates the folder's display name
func (r *PostgresFolderRepository) Rename(ctx context.Context, id, name string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, updated_at = now()
		WHERE id = $2
		RETURNING %s
	`, r.tables.Folders, folderColumns)

	executor := postgres.GetExecutor(ctx, r.pool)
	return r.scanFolder(executor.QueryRow(ctx, query, name, id), id)
}

// SetCover updates the folder's cover photo reference; nil clears it.
// A non-nil photo must be owned by this exact folder.
func (r *PostgresFolderRepository) SetCover(ctx context.Context, id string, photoID *string) (*models.Folder, error) {
	executor := postgres.GetExecutor(ctx, r.pool)

	if photoID != nil {
		var inFolder bool
		query := fmt.Sprintf(`
			SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1 AND folder_id = $2)
		`, r.tables.Photos)
		if err := executor.QueryRow(ctx, query, *photoID, id).Scan(&inFolder); err != nil {
			return nil, postgres.WrapQueryError("check cover photo", err)
		}
		if !inFolder {
			return nil, &domain.StructuralError{
				Code:    domain.CodePhotoNotInFolder,
				Message: fmt.Sprintf("photo %s does not belong to folder %s", *photoID, id),
			}
		}
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET cover_photo_id = $1, updated_at = now()
		WHERE id = $2
		RETURNING %s
	`, r.tables.Folders, folderColumns)

	return r.scanFolder(executor.QueryRow(ctx, query, photoID, id), id)
}

// Reparent performs the raw parent pointer update; nil moves the folder
// to the gallery root. Cycle-safety is the caller's responsibility.
func (r *PostgresFolderRepository) Reparent(ctx context.Context, id string, parentID *string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, updated_at = now()
		WHERE id = $2
		RETURNING %s
	`, r.tables.Folders, folderColumns)

	executor := postgres.GetExecutor(ctx, r.pool)
	return r.scanFolder(executor.QueryRow(ctx, query, parentID, id), id)
}

// DeleteSubtree removes the folder, every descendant folder, and every
// photo owned by any folder in that subtree. Callers run it inside a
// transaction so the cascade is all-or-nothing.
func (r *PostgresFolderRepository) DeleteSubtree(ctx context.Context, id string) error {
	executor := postgres.GetExecutor(ctx, r.pool)

	photosQuery := fmt.Sprintf(`
		WITH RECURSIVE subtree AS (
			SELECT id FROM %s WHERE id = $1
			UNION ALL
			SELECT f.id FROM %s f
			JOIN subtree s ON f.parent_id = s.id
		)
		DELETE FROM %s WHERE folder_id IN (SELECT id FROM subtree)
	`, r.tables.Folders, r.tables.Folders, r.tables.Photos)

	if _, err := executor.Exec(ctx, photosQuery, id); err != nil {
		return postgres.WrapQueryError("delete subtree photos", err)
	}

	foldersQuery := fmt.Sprintf(`
		WITH RECURSIVE subtree AS (
			SELECT id FROM %s WHERE id = $1
			UNION ALL
			SELECT f.id FROM %s f
			JOIN subtree s ON f.parent_id = s.id
		)
		DELETE FROM %s WHERE id IN (SELECT id FROM subtree)
	`, r.tables.Folders, r.tables.Folders, r.tables.Folders)

	result, err := executor.Exec(ctx, foldersQuery, id)
	if err != nil {
		return postgres.WrapQueryError("delete subtree folders", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresFolderRepository) queryFolders(ctx context.Context, query string, arg string) ([]models.Folder, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, arg)
	if err != nil {
		return nil, postgres.WrapQueryError("list folders", err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.GalleryID,
			&folder.ParentID,
			&folder.Name,
			&folder.CoverPhotoID,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

func (r *PostgresFolderRepository) scanFolder(row pgx.Row, id string) (*models.Folder, error) {
	var folder models.Folder
	err := row.Scan(
		&folder.ID,
		&folder.GalleryID,
		&folder.ParentID,
		&folder.Name,
		&folder.CoverPhotoID,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.WrapQueryError("get folder", err)
	}
	return &folder, nil
}
