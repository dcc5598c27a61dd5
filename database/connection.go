package database

import (
	"embed"
	"fmt"
	"log"

	"yatube/config"
	"yatube/models"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Models lists every table owned by the application, in dependency order.
func Models() []interface{} {
	return []interface{}{&models.User{}, &models.Group{}, &models.Post{}}
}

func Connect(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.Debug {
		level = logger.Info
	}
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL())
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on")
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Printf("Database connected successfully (%s)", cfg.DBDriver)
	return db, nil
}

// Migrate brings the schema up to date. Postgres runs the embedded goose
// migrations; sqlite falls back to gorm's AutoMigrate.
func Migrate(db *gorm.DB, driver string) error {
	if driver != "postgres" {
		if err := db.AutoMigrate(Models()...); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
		log.Println("Database migrated successfully (auto-migrate)")
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := prepareGoose(); err != nil {
		return err
	}
	if err := goose.Up(sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	log.Println("Database migrated successfully")
	return nil
}

func Rollback(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := prepareGoose(); err != nil {
		return err
	}
	return goose.Down(sqlDB, migrationsDir)
}

func Status(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := prepareGoose(); err != nil {
		return err
	}
	return goose.Status(sqlDB, migrationsDir)
}

func prepareGoose() error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}
