package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/daksndt/catalog/config"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// getDatabase opens a gorm handle for the configured backend. The database
// type selects between the two supported storage technologies at
// configuration time.
func getDatabase(cfg config.DBConfig, workdir string) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.Debug {
		level = logger.Info
	}
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(level),
	}

	switch cfg.Type {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name, time.Local.String())
		db, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			return nil, errors.Wrap(err, "open postgres")
		}
		return db, nil
	case "sqlite":
		dbfile := filepath.Join(workdir, cfg.Name+".db")
		db, err := gorm.Open(sqlite.Open(dbfile), gormCfg)
		if err != nil {
			return nil, errors.Wrap(err, "open sqlite")
		}
		return db, nil
	default:
		return nil, errors.Errorf("unsupported database type: %s", cfg.Type)
	}
}
