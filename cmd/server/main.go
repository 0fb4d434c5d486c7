package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"lumina/internal/auth"
	"lumina/internal/config"
	"lumina/internal/handler"
	"lumina/internal/middleware"
	"lumina/internal/repository/postgres"
	postgresGallery "lumina/internal/repository/postgres/gallery"
	serviceAuth "lumina/internal/service/auth"
	serviceGallery "lumina/internal/service/gallery"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, config.MaxLogFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = logFile
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	galleryRepo := postgresGallery.NewGalleryRepository(repoConfig)
	folderRepo := postgresGallery.NewFolderRepository(repoConfig)
	photoRepo := postgresGallery.NewPhotoRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Create authorizer (ownership-based; public galleries readable by anyone)
	authorizer := serviceAuth.NewOwnerBasedAuthorizer(galleryRepo, folderRepo)

	// Create services
	galleryService := serviceGallery.NewGalleryService(galleryRepo, authorizer, logger)
	treeService := serviceGallery.NewTreeService(folderRepo, photoRepo, authorizer, logger)
	folderService := serviceGallery.NewFolderService(folderRepo, photoRepo, galleryRepo, treeService, txManager, authorizer, logger)

	// Create handlers
	galleryHandler := handler.NewGalleryHandler(galleryService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	treeHandler := handler.NewTreeHandler(treeService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Gallery routes
	mux.HandleFunc("GET /api/galleries", galleryHandler.ListGalleries)
	mux.HandleFunc("POST /api/galleries", galleryHandler.CreateGallery)
	mux.HandleFunc("GET /api/galleries/{id}", galleryHandler.GetGallery)

	// Gallery tree endpoint
	mux.HandleFunc("GET /api/galleries/{id}/tree", treeHandler.GetTree)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("PUT /api/folders/{id}/cover", folderHandler.SetCover)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	httpHandler = middleware.AuthMiddleware(jwtVerifier)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
