// api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"lumiere/api/database"
	"lumiere/api/handlers"
	"lumiere/api/middleware"
	"lumiere/api/store"
)

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Initialize PostgreSQL Database (session documents) ---
	dbClient, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
	}
	defer dbClient.Close()

	// --- Initialize ClickHouse Database (derived-table archive) ---
	chClient, err := database.NewClickHouseDB()
	if err != nil {
		log.Fatalf("Failed to initialize ClickHouse database: %v", err)
	}
	defer chClient.Close()

	// --- Initialize Stores ---
	sessionStore, err := store.NewSessionStore(dbClient.DB)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}
	archiveStore := store.NewArchiveStore(chClient)

	// --- Initialize Handlers ---
	datasetHandlers := handlers.NewDatasetHandlers(sessionStore, archiveStore)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		dataset := api.Group("/dataset")
		{
			dataset.GET("", datasetHandlers.GetDataset)
			dataset.GET("/quality", datasetHandlers.GetQuality)
			dataset.GET("/summary", datasetHandlers.GetSummary)
			dataset.GET("/stats", datasetHandlers.GetStats)
			dataset.GET("/export", datasetHandlers.ExportCSV)
			dataset.POST("/archive", datasetHandlers.ArchiveDataset)
		}

		api.GET("/sessions/:session_id", datasetHandlers.GetSession)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Lumiere API server starting on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Lumiere API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
