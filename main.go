package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"videomerger/config"
	"videomerger/handlers"
	"videomerger/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Configuration loaded: %s", cfg)

	// Staging and output areas are process-wide and persist across runs
	if err := utils.EnsureDir(cfg.TempDir); err != nil {
		log.Fatalf("Failed to create temp dir: %v", err)
	}
	if err := utils.EnsureDir(cfg.OutputDir); err != nil {
		log.Fatalf("Failed to create output dir: %v", err)
	}

	// Create Gin router
	router := gin.Default()

	// Setup CORS
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	// Health check endpoint
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Video Merger API is running",
		})
	}
	router.GET("/", health)
	router.HEAD("/", health)

	// Initialize merge handler
	mergeHandler := handlers.NewMergeHandler(cfg)

	// API routes
	router.POST("/merge", mergeHandler.Merge)
	router.GET("/output/:filename", mergeHandler.Download)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
