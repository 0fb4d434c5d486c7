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

// PostgresGalleryRepository implements the GalleryRepository interface
type PostgresGalleryRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewGalleryRepository creates a new gallery repository
func NewGalleryRepository(config *postgres.RepositoryConfig) galleryRepo.GalleryRepository {
	return &PostgresGalleryRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new gallery
func (r *PostgresGalleryRepository) Create(ctx context.Context, g *models.Gallery) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, name, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, r.tables.Galleries)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		g.ID,
		g.OwnerID,
		g.Name,
		g.IsPublic,
		g.CreatedAt,
		g.UpdatedAt,
	).Scan(&g.CreatedAt, &g.UpdatedAt)

	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return fmt.Errorf("gallery '%s': %w", g.Name, domain.ErrConflict)
		}
		return postgres.WrapQueryError("create gallery", err)
	}

	return nil
}

// GetByID retrieves a gallery by ID regardless of owner
func (r *PostgresGalleryRepository) GetByID(ctx context.Context, id string) (*models.Gallery, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, name, is_public, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Galleries)

	executor := postgres.GetExecutor(ctx, r.pool)
	return r.scanGallery(executor.QueryRow(ctx, query, id), id)
}

// GetByIDForOwner retrieves a gallery by ID, scoped to its owner
func (r *PostgresGalleryRepository) GetByIDForOwner(ctx context.Context, id, ownerID string) (*models.Gallery, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, name, is_public, created_at, updated_at
		FROM %s
		WHERE id = $1 AND owner_id = $2
	`, r.tables.Galleries)

	executor := postgres.GetExecutor(ctx, r.pool)
	return r.scanGallery(executor.QueryRow(ctx, query, id, ownerID), id)
}

// ListByOwner retrieves all galleries owned by a user, most recently
// updated first
func (r *PostgresGalleryRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Gallery, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, name, is_public, created_at, updated_at
		FROM %s
		WHERE owner_id = $1
		ORDER BY updated_at DESC
	`, r.tables.Galleries)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ownerID)
	if err != nil {
		return nil, postgres.WrapQueryError("list galleries", err)
	}
	defer rows.Close()

	galleries := []models.Gallery{}
	for rows.Next() {
		var g models.Gallery
		err := rows.Scan(
			&g.ID,
			&g.OwnerID,
			&g.Name,
			&g.IsPublic,
			&g.CreatedAt,
			&g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan gallery: %w", err)
		}
		galleries = append(galleries, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate galleries: %w", err)
	}

	return galleries, nil
}

// LockForUpdate takes a row lock on the gallery for the duration of the
// surrounding transaction. Serializes structural mutations per gallery:
// no second move or cascading delete can interleave between a descendant
// check and the write that follows it.
func (r *PostgresGalleryRepository) LockForUpdate(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		SELECT id FROM %s WHERE id = $1 FOR UPDATE
	`, r.tables.Galleries)

	var locked string
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(&locked)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return fmt.Errorf("gallery %s: %w", id, domain.ErrNotFound)
		}
		return postgres.WrapQueryError("lock gallery", err)
	}

	return nil
}

func (r *PostgresGalleryRepository) scanGallery(row pgx.Row, id string) (*models.Gallery, error) {
	var g models.Gallery
	err := row.Scan(
		&g.ID,
		&g.OwnerID,
		&g.Name,
		&g.IsPublic,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("gallery %s: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.WrapQueryError("get gallery", err)
	}
	return &g, nil
}
