package services

import (
	"fmt"
	"strings"
	"testing"

	"peerlink/internal/db"
	"peerlink/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database per test and migrates the
// full schema. cache=shared keeps the database alive across pooled
// connections; the test name keeps databases apart.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	g, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(g))
	return g
}

// seedPost inserts a post directly, bypassing the service gate.
func seedPost(t *testing.T, g *gorm.DB, author, title string) *models.Post {
	t.Helper()
	post := models.Post{Author: author, Title: title, Body: "seeded question body"}
	require.NoError(t, g.Create(&post).Error)
	return &post
}
