// internal/repository/gormrepo/store.go
package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"github.com/dzfactories/backend/internal/repository"
)

// Store implements repository.Store on top of GORM. Filter composition is
// done with chained predicates; list-valued columns go through the shared
// models.StringList JSON encoding.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, repository.QueryTimeout)
}
