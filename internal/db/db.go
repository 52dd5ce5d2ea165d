package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/config"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := open(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := Seed(db); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	return db
}

func open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
			PrepareStmt: true,
		})

	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.DBUrl), 0o755); err != nil {
			return nil, err
		}

		dsn := cfg.DBUrl + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
			PrepareStmt: true,
		})
		if err != nil {
			return nil, err
		}

		// Join-table cascades depend on this.
		if err := db.Exec("PRAGMA foreign_keys = ON;").Error; err != nil {
			return nil, err
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.UserRole{},
		&models.Menu{},
		&models.UserMenu{},
		&models.Staff{},
		&models.Appointment{},
		&models.AuditLog{},
	)
}
