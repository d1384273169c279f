// internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dzfactories/backend/internal/models"
)

// ErrNotFound is returned by point lookups and targeted mutations when no
// record carries the given id. It is a normal outcome, not a failure.
var ErrNotFound = errors.New("record not found")

// QueryTimeout bounds every repository operation. Expiry surfaces as an
// upstream failure to the caller.
const QueryTimeout = 10 * time.Second

// FactoryFilter narrows ListFactories. Zero values impose no constraint.
// Search matches case-insensitively against both bilingual name and
// description fields; Wilaya and Category require exact equality.
type FactoryFilter struct {
	Search   string
	Wilaya   string
	Category string
}

type FactoryRepository interface {
	// ListFactories returns matching factories newest-first. An empty
	// result is valid.
	ListFactories(ctx context.Context, filter FactoryFilter) ([]models.Factory, error)
	GetFactory(ctx context.Context, id string) (*models.Factory, error)
	// CreateFactory assigns the id, zeroes the counters, stamps both
	// timestamps and returns the stored record.
	CreateFactory(ctx context.Context, factory *models.Factory) (*models.Factory, error)
	// UpdateFactory applies only the set fields and refreshes updatedAt.
	// It never creates a record implicitly.
	UpdateFactory(ctx context.Context, id string, update *models.FactoryUpdate) (*models.Factory, error)
	// DeleteFactory reports true exactly once per existing id; repeated
	// deletes return false, not an error.
	DeleteFactory(ctx context.Context, id string) (bool, error)
	// IncrementViews bumps the detail-page counter.
	IncrementViews(ctx context.Context, id string) error
	// Stats aggregates the public directory counters.
	Stats(ctx context.Context) (*models.DirectoryStats, error)
}

type UserRepository interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id string, update *models.UserUpdate) (*models.User, error)
}

type ReviewRepository interface {
	ListReviews(ctx context.Context, factoryID string) ([]models.Review, error)
	CreateReview(ctx context.Context, review *models.Review) (*models.Review, error)
}

// Store is the full storage contract. All implementations must be
// behaviorally identical for identical inputs, including filter semantics
// and not-found handling, so callers can be bound to any backend at
// startup without code change.
type Store interface {
	FactoryRepository
	UserRepository
	ReviewRepository
	Close() error
}
