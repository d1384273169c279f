// internal/repository/firestorerepo/review.go
package firestorerepo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/dzfactories/backend/internal/models"
)

func (s *Store) ListReviews(ctx context.Context, factoryID string) ([]models.Review, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	iter := s.client.Collection(reviewsCollection).
		Where("factoryId", "==", factoryID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	reviews := []models.Review{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate reviews: %w", err)
		}

		var r models.Review
		if err := doc.DataTo(&r); err != nil {
			return nil, fmt.Errorf("failed to decode review document: %w", err)
		}
		reviews = append(reviews, r)
	}

	return reviews, nil
}

func (s *Store) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	review.ID = uuid.New().String()
	review.CreatedAt = time.Now().UTC()

	if _, err := s.client.Collection(reviewsCollection).Doc(review.ID).Set(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}
