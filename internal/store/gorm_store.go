package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/worktrackhq/worktrack/internal/config"
)

// Document is one persisted collection: a single row holding the whole
// JSON array for its key.
type Document struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// GormStore is a DocumentStore backed by a relational document table.
// A mutex serializes access so a background deadline scan cannot
// interleave with a foreground mutation.
type GormStore struct {
	db *gorm.DB
	mu sync.Mutex
}

// Connect opens the database configured by cfg. SQLite is the default;
// MySQL and Postgres are available for shared deployments.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DBDSN)
	case "mysql":
		dialector = mysql.Open(cfg.DBDSN)
	case "postgres":
		dialector = postgres.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// NewGormStore migrates the document table and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, fmt.Errorf("failed to migrate document table: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc Document
	err := s.db.First(&doc, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(doc.Value), true, nil
}

func (s *GormStore) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := Document{Key: key, Value: string(value), UpdatedAt: time.Now()}
	return s.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&doc).Error
}
