package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DefaultSQLitePath is the history database used when no URL is configured.
const DefaultSQLitePath = "interviewcoach.db"

// Connect opens the history database. A postgres:// URL selects Postgres;
// anything else is treated as a SQLite file path, defaulting to a local file
// so the service runs without external infrastructure.
func Connect(url string) (*gorm.DB, error) {
	if url == "" {
		url = DefaultSQLitePath
	}

	var dialector gorm.Dialector
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		dialector = postgres.Open(url)
	} else {
		dialector = sqlite.Open(url)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
