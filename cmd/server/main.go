package main

import (
	"os"

	"peerlink/internal/db"
	"peerlink/internal/logger"
	"peerlink/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.L.Info("no .env file found, reading env vars from system")
	}

	// Initialize Database
	db.Init()

	// Initialize Gin
	r := gin.Default()

	router.RegisterRoutes(r, db.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.L.Info("peerlink server starting on :" + port)
	if err := r.Run(":" + port); err != nil {
		logger.L.Fatal("server exited", logger.Err(err))
	}
}
