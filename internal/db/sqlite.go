package db

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/mockmentor-backend/internal/platform/logger"
	"github.com/yungbote/mockmentor-backend/internal/types"
	"github.com/yungbote/mockmentor-backend/internal/utils"
)

type SQLiteService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSQLiteService(log *logger.Logger) (*SQLiteService, error) {
	serviceLog := log.With("service", "SQLiteService")

	path := utils.GetEnv("SQLITE_PATH", "data/mockmentor.db", log)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			serviceLog.Error("Failed to create sqlite directory", "error", err)
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	serviceLog.Info("Opening SQLite database...", "path", path)
	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		serviceLog.Error("Failed to open SQLite database", "error", err)
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	return &SQLiteService{db: gormDB, log: serviceLog}, nil
}

func (s *SQLiteService) AutoMigrateAll() error {
	s.log.Info("Auto migrating sqlite tables...")
	if err := s.db.AutoMigrate(&types.SessionRow{}); err != nil {
		s.log.Error("Auto migration failed for sqlite tables", "error", err)
		return fmt.Errorf("sqlite automigrate: %w", err)
	}
	return nil
}

func (s *SQLiteService) DB() *gorm.DB {
	return s.db
}
