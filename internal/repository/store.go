package repository

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	"useradmin/internal/config"
	"useradmin/internal/db"
)

// Open builds the repository selected by cfg.StoreDriver. SQL backends are
// migrated before use. With reset set, existing users are dropped first.
// The returned close func releases the backend.
func Open(cfg *config.Config, reset bool) (UserRepository, func() error, error) {
	switch cfg.StoreDriver {
	case config.DriverFile:
		if reset {
			if err := os.Remove(cfg.DataFile); err != nil && !os.IsNotExist(err) {
				return nil, nil, fmt.Errorf("reset %s: %w", cfg.DataFile, err)
			}
		}
		repo, err := NewFileUserRepository(cfg.DataFile)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() error { return nil }, nil
	case config.DriverMySQL:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		return openSQL(gormDB, reset)
	case config.DriverSQLite:
		gormDB, err := db.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return openSQL(gormDB, reset)
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openSQL(gormDB *gorm.DB, reset bool) (UserRepository, func() error, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("sql handle: %w", err)
	}
	if reset {
		if err := db.DropUsers(gormDB); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("drop users: %w", err)
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}
	return NewUserRepository(gormDB), sqlDB.Close, nil
}
