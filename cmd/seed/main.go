package main

import (
	"context"
	_ "embed"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"lumina/internal/config"
	models "lumina/internal/domain/models/gallery"
	galleryRepo "lumina/internal/domain/repositories/gallery"
	"lumina/internal/repository/postgres"
	postgresGallery "lumina/internal/repository/postgres/gallery"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed fixture.yaml
var fixtureYAML []byte

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed fixture data")
	clearData := flag.Bool("clear-data", false, "Clear all galleries, folders and photos (keep schema)")
	ownerID := flag.String("owner", "00000000-0000-0000-0000-000000000001", "Owner user ID for seeded galleries")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	// Exit early if schema-only mode
	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		log.Println("🧹 Clearing existing galleries, folders and photos...")
		if err := clearAllData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared successfully")
		return
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	galleries := postgresGallery.NewGalleryRepository(repoConfig)
	folders := postgresGallery.NewFolderRepository(repoConfig)
	photos := postgresGallery.NewPhotoRepository(repoConfig)

	// Clear existing data before re-seeding
	log.Println("⚠️  Clearing existing galleries, folders and photos...")
	if err := clearAllData(ctx, pool, tables); err != nil {
		log.Printf("Warning: Could not clear data: %v", err)
	}

	// Parse the embedded fixture
	var fixture seedFixture
	if err := yaml.Unmarshal(fixtureYAML, &fixture); err != nil {
		log.Fatalf("Failed to parse fixture: %v", err)
	}

	log.Println("📸 Seeding galleries with folder structure...")

	seeder := &seeder{galleries: galleries, folders: folders, photos: photos}
	for _, g := range fixture.Galleries {
		if err := seeder.seedGallery(ctx, *ownerID, g); err != nil {
			log.Fatalf("❌ Failed to seed gallery '%s': %v", g.Name, err)
		}
	}

	log.Println("🎉 Seeding complete!")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	_, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"")
	if err != nil {
		return err
	}

	// Create galleries table
	createGalleries := `
		CREATE TABLE IF NOT EXISTS ` + tables.Galleries + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			owner_id UUID NOT NULL,
			name TEXT NOT NULL,
			is_public BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createGalleries); err != nil {
		return err
	}

	// Create folders table (cover_photo_id FK added after photos exists)
	createFolders := `
		CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			gallery_id UUID NOT NULL REFERENCES ` + tables.Galleries + `(id) ON DELETE CASCADE,
			parent_id UUID REFERENCES ` + tables.Folders + `(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			cover_photo_id UUID,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createFolders); err != nil {
		return err
	}

	// Create photos table
	createPhotos := `
		CREATE TABLE IF NOT EXISTS ` + tables.Photos + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			folder_id UUID NOT NULL REFERENCES ` + tables.Folders + `(id) ON DELETE CASCADE,
			file_name TEXT NOT NULL,
			taken_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createPhotos); err != nil {
		return err
	}

	// Dangling covers clear automatically when the photo goes away
	coverFK := `
		DO $$ BEGIN
			ALTER TABLE ` + tables.Folders + `
				ADD CONSTRAINT ` + tablePrefix + `folders_cover_photo_fk
				FOREIGN KEY (cover_photo_id) REFERENCES ` + tables.Photos + `(id) ON DELETE SET NULL;
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$
	`
	if _, err := pool.Exec(ctx, coverFK); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `galleries_owner ON ` + tables.Galleries + `(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_gallery_parent ON ` + tables.Folders + `(gallery_id, parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `photos_folder ON ` + tables.Photos + `(folder_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `photos_folder_capture ON ` + tables.Photos + `(folder_id, (COALESCE(taken_at, created_at)), id)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Photos,
		tables.Folders,
		tables.Galleries,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}

// clearAllData removes every row while keeping the schema
func clearAllData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range []string{tables.Photos, tables.Folders, tables.Galleries} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

type seedFixture struct {
	Galleries []seedGallery `yaml:"galleries"`
}

type seedGallery struct {
	Name     string       `yaml:"name"`
	IsPublic bool         `yaml:"is_public"`
	Folders  []seedFolder `yaml:"folders"`
}

type seedFolder struct {
	Name    string       `yaml:"name"`
	Cover   string       `yaml:"cover"` // file name of one of this folder's photos
	Folders []seedFolder `yaml:"folders"`
	Photos  []seedPhoto  `yaml:"photos"`
}

type seedPhoto struct {
	FileName string     `yaml:"file_name"`
	TakenAt  *time.Time `yaml:"taken_at"`
}

type seeder struct {
	galleries galleryRepo.GalleryRepository
	folders   galleryRepo.FolderRepository
	photos    galleryRepo.PhotoRepository
}

func (s *seeder) seedGallery(ctx context.Context, ownerID string, data seedGallery) error {
	now := time.Now()
	g := &models.Gallery{
		OwnerID:   ownerID,
		Name:      data.Name,
		IsPublic:  data.IsPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.galleries.Create(ctx, g); err != nil {
		return err
	}
	log.Printf("✅ Created gallery: %s (ID: %s)", g.Name, g.ID)

	for _, f := range data.Folders {
		if err := s.seedFolder(ctx, g.ID, nil, f); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) seedFolder(ctx context.Context, galleryID string, parentID *string, data seedFolder) error {
	now := time.Now()
	folder := &models.Folder{
		GalleryID: galleryID,
		ParentID:  parentID,
		Name:      data.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.folders.Create(ctx, folder); err != nil {
		return err
	}

	var coverID *string
	for _, p := range data.Photos {
		photo := &models.Photo{
			FolderID:  folder.ID,
			FileName:  p.FileName,
			TakenAt:   p.TakenAt,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.photos.Create(ctx, photo); err != nil {
			return err
		}
		if data.Cover != "" && p.FileName == data.Cover {
			coverID = &photo.ID
		}
	}

	if coverID != nil {
		if _, err := s.folders.SetCover(ctx, folder.ID, coverID); err != nil {
			return err
		}
	}

	log.Printf("  ✓ Created folder: %s (%d photos)", folder.Name, len(data.Photos))

	for _, child := range data.Folders {
		if err := s.seedFolder(ctx, galleryID, &folder.ID, child); err != nil {
			return err
		}
	}
	return nil
}
