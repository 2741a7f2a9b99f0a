package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"edufeed/internal/config"
	"edufeed/internal/dbmongo"
	"edufeed/internal/media"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.LoadConfig()

	// Connect to MongoDB
	mongoClient, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Close(context.Background())

	// Create HTTP server backed by GridFS
	mediaServer := media.NewHTTPServer(mongoClient)

	// Start server
	log.Printf("🚀 Media HTTP Server starting on port %s", cfg.Server.MediaServicePort)
	log.Printf("📂 Serving files at: http://localhost:%s/media/feed_videos/{fileName}", cfg.Server.MediaServicePort)

	if err := http.ListenAndServe(":"+cfg.Server.MediaServicePort, mediaServer); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
