package database

import (
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"erp_backend/internals/configs"
)

// OpenSQLite opens a pure-Go SQLite database (local development and tests).
// An in-memory dsn is pinned to one connection so every query sees the same database.
func OpenSQLite(dsn string, quiet bool) (*gorm.DB, error) {
	logger := configs.NewGormLogger()
	if quiet {
		logger = logger.LogMode(gormLogger.Silent)
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger,
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open sqlite %q", dsn)
	}
	if dsn == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "sqlite pool")
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}
