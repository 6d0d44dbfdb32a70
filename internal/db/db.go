package db

import (
	"os"

	"peerlink/internal/logger"
	"peerlink/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=peerlink port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.L.Fatal("failed to connect to database", logger.Err(err))
	}

	logger.L.Info("database connection established")

	if err := Migrate(DB); err != nil {
		logger.L.Fatal("failed to migrate database", logger.Err(err))
	}
	logger.L.Info("database migration completed")
}

// Migrate creates or updates the schema for every persisted entity. Tests
// run it against an in-memory sqlite database.
func Migrate(g *gorm.DB) error {
	return g.AutoMigrate(
		&models.Post{},
		&models.Reply{},
		&models.ReplyLike{},
		&models.Review{},
		&models.Feedback{},
		&models.TrustEdge{},
		&models.WeightEdge{},
		&models.RatingEdge{},
		&models.Notification{},
	)
}
