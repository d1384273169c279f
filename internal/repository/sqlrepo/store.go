// internal/repository/sqlrepo/store.go
package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dzfactories/backend/internal/repository"
)

// Store implements repository.Store with hand-assembled parameterized SQL
// over database/sql. Every value passes through parameter binding; nothing
// is ever interpolated into a query string. List-valued fields are stored
// as JSON text since the schema carries no native array columns.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the tables this adapter expects. The ORM adapter
// owns migrations for its own deployment; raw-SQL deployments bootstrap
// through this instead.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS factories (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			name_ar VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			description_ar TEXT NOT NULL,
			address VARCHAR(500) NOT NULL,
			address_ar VARCHAR(500) NOT NULL,
			wilaya VARCHAR(100) NOT NULL,
			category VARCHAR(100) NOT NULL,
			products TEXT NOT NULL DEFAULT '[]',
			products_ar TEXT NOT NULL DEFAULT '[]',
			gallery TEXT NOT NULL DEFAULT '[]',
			certifications TEXT NOT NULL DEFAULT '[]',
			phone VARCHAR(50) NOT NULL,
			email VARCHAR(255) NOT NULL,
			website VARCHAR(255) NOT NULL DEFAULT '',
			latitude VARCHAR(50) NOT NULL DEFAULT '',
			longitude VARCHAR(50) NOT NULL DEFAULT '',
			views_count BIGINT NOT NULL DEFAULT 0,
			rating DECIMAL(3,2) NOT NULL DEFAULT 0,
			reviews_count BIGINT NOT NULL DEFAULT 0,
			certified BOOLEAN NOT NULL DEFAULT FALSE,
			verified BOOLEAN NOT NULL DEFAULT FALSE,
			owner_id VARCHAR(64) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_factories_wilaya ON factories(wilaya)`,
		`CREATE INDEX IF NOT EXISTS idx_factories_category ON factories(category)`,
		`CREATE INDEX IF NOT EXISTS idx_factories_created_at ON factories(created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL DEFAULT '',
			name VARCHAR(255) NOT NULL DEFAULT '',
			google_id VARCHAR(255) NOT NULL DEFAULT '',
			picture VARCHAR(500) NOT NULL DEFAULT '',
			role VARCHAR(20) NOT NULL DEFAULT 'user',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id UUID PRIMARY KEY,
			factory_id UUID NOT NULL,
			user_id UUID NOT NULL,
			rating INT NOT NULL,
			comment TEXT NOT NULL DEFAULT '',
			comment_ar TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_factory ON reviews(factory_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	return nil
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, repository.QueryTimeout)
}
