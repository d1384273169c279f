// internal/repository/sqlrepo/review.go
package sqlrepo

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

	query := `SELECT id, factory_id, user_id, rating, comment, comment_ar, created_at
		FROM reviews WHERE factory_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, factoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(
			&r.ID, &r.FactoryID, &r.UserID, &r.Rating,
			&r.Comment, &r.CommentAr, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate review rows: %w", err)
	}

	return reviews, nil
}

func (s *Store) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	review.ID = uuid.New().String()
	review.CreatedAt = time.Now().UTC()

	query := `INSERT INTO reviews (id, factory_id, user_id, rating, comment, comment_ar, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		review.ID, review.FactoryID, review.UserID, review.Rating,
		review.Comment, review.CommentAr, review.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}
