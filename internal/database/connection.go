// internal/database/connection.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dzfactories/backend/internal/config"
	"github.com/dzfactories/backend/internal/models"
	"github.com/dzfactories/backend/internal/repository"
	"github.com/dzfactories/backend/internal/repository/firestorerepo"
	"github.com/dzfactories/backend/internal/repository/gormrepo"
	"github.com/dzfactories/backend/internal/repository/sqlrepo"
)

// NewStore builds the storage backend selected by configuration. All
// backends satisfy the same repository.Store contract, so the rest of the
// process never knows which engine it is talking to.
func NewStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverGorm:
		db, err := initializeGorm(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := runMigrations(db); err != nil {
			return nil, err
		}
		return gormrepo.New(db), nil

	case config.DriverSQL:
		db, err := openSQL(cfg.Database)
		if err != nil {
			return nil, err
		}
		store := sqlrepo.New(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil

	case config.DriverFirestore:
		return firestorerepo.New(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

func initializeGorm(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if cfg.LogLevel != "silent" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return db, nil
}

func openSQL(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return db, nil
}

func runMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.Factory{},
		&models.User{},
		&models.Review{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_factories_wilaya_category ON factories(wilaya, category)",
		"CREATE INDEX IF NOT EXISTS idx_factories_created_at ON factories(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_reviews_factory_created ON reviews(factory_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}
