// internal/repository/gormrepo/review.go
package gormrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dzfactories/backend/internal/models"
)

func (s *Store) ListReviews(ctx context.Context, factoryID string) ([]models.Review, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	reviews := []models.Review{}
	if err := s.db.WithContext(ctx).
		Where("factory_id = ?", factoryID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

func (s *Store) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	review.ID = uuid.New().String()
	review.CreatedAt = time.Now().UTC()

	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}
