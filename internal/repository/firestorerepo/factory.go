// internal/repository/firestorerepo/factory.go
package firestorerepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dzfactories/backend/internal/models"
	"github.com/dzfactories/backend/internal/repository"
)

// matchesSearch reports whether the factory matches a lowercased search
// term across both bilingual name and description fields.
func matchesSearch(f *models.Factory, term string) bool {
	if term == "" {
		return true
	}
	for _, field := range []string{f.Name, f.NameAr, f.Description, f.DescriptionAr} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (s *Store) ListFactories(ctx context.Context, filter repository.FactoryFilter) ([]models.Factory, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := s.client.Collection(factoriesCollection).Query
	if filter.Wilaya != "" {
		query = query.Where("wilaya", "==", filter.Wilaya)
	}
	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	// Firestore has no substring predicate, so the search term is applied
	// in memory over the equality-filtered set. This scans the whole
	// collection when no other filter is present and will not hold up at
	// large document counts.
	term := strings.ToLower(filter.Search)

	factories := []models.Factory{}
	iter := query.Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate factories: %w", err)
		}

		var f models.Factory
		if err := doc.DataTo(&f); err != nil {
			return nil, fmt.Errorf("failed to decode factory document: %w", err)
		}
		if matchesSearch(&f, term) {
			factories = append(factories, f)
		}
	}

	return factories, nil
}

func (s *Store) GetFactory(ctx context.Context, id string) (*models.Factory, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	doc, err := s.client.Collection(factoriesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get factory: %w", err)
	}

	var f models.Factory
	if err := doc.DataTo(&f); err != nil {
		return nil, fmt.Errorf("failed to decode factory document: %w", err)
	}

	return &f, nil
}

func (s *Store) CreateFactory(ctx context.Context, factory *models.Factory) (*models.Factory, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	factory.ID = uuid.New().String()
	factory.ViewsCount = 0
	factory.Rating = 0
	factory.ReviewsCount = 0
	factory.CreatedAt = now
	factory.UpdatedAt = now
	factory.NormalizeLists()

	if _, err := s.client.Collection(factoriesCollection).Doc(factory.ID).Set(ctx, factory); err != nil {
		return nil, fmt.Errorf("failed to create factory: %w", err)
	}

	return factory, nil
}

// factoryUpdates maps the set fields of a partial update onto Firestore
// field paths. The adapter owns this mapping; nothing outside it builds
// document updates.
func factoryUpdates(update *models.FactoryUpdate) []firestore.Update {
	var updates []firestore.Update
	add := func(path string, value interface{}) {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.NameAr != nil {
		add("nameAr", *update.NameAr)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.DescriptionAr != nil {
		add("descriptionAr", *update.DescriptionAr)
	}
	if update.Address != nil {
		add("address", *update.Address)
	}
	if update.AddressAr != nil {
		add("addressAr", *update.AddressAr)
	}
	if update.Wilaya != nil {
		add("wilaya", *update.Wilaya)
	}
	if update.Category != nil {
		add("category", *update.Category)
	}
	if update.Products != nil {
		add("products", []string(*update.Products))
	}
	if update.ProductsAr != nil {
		add("productsAr", []string(*update.ProductsAr))
	}
	if update.Gallery != nil {
		add("gallery", []string(*update.Gallery))
	}
	if update.Certifications != nil {
		add("certifications", []string(*update.Certifications))
	}
	if update.Phone != nil {
		add("phone", *update.Phone)
	}
	if update.Email != nil {
		add("email", *update.Email)
	}
	if update.Website != nil {
		add("website", *update.Website)
	}
	if update.Latitude != nil {
		add("latitude", *update.Latitude)
	}
	if update.Longitude != nil {
		add("longitude", *update.Longitude)
	}
	if update.Rating != nil {
		add("rating", *update.Rating)
	}
	if update.ReviewsCount != nil {
		add("reviewsCount", *update.ReviewsCount)
	}
	if update.Certified != nil {
		add("certified", *update.Certified)
	}
	if update.Verified != nil {
		add("verified", *update.Verified)
	}
	if update.OwnerID != nil {
		add("ownerId", *update.OwnerID)
	}

	return updates
}

func (s *Store) UpdateFactory(ctx context.Context, id string, update *models.FactoryUpdate) (*models.Factory, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	updates := factoryUpdates(update)
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now().UTC()})

	ref := s.client.Collection(factoriesCollection).Doc(id)
	if _, err := ref.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update factory: %w", err)
	}

	return s.GetFactory(ctx, id)
}

func (s *Store) DeleteFactory(ctx context.Context, id string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	ref := s.client.Collection(factoriesCollection).Doc(id)
	if _, err := ref.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check factory: %w", err)
	}

	if _, err := ref.Delete(ctx); err != nil {
		return false, fmt.Errorf("failed to delete factory: %w", err)
	}

	return true, nil
}

func (s *Store) IncrementViews(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	ref := s.client.Collection(factoriesCollection).Doc(id)
	_, err := ref.Update(ctx, []firestore.Update{
		{Path: "viewsCount", Value: firestore.Increment(1)},
	})
	if err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("failed to increment views: %w", err)
	}

	return nil
}

func (s *Store) Stats(ctx context.Context) (*models.DirectoryStats, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	categories := make(map[string]struct{})
	wilayas := make(map[string]struct{})
	var total int64

	iter := s.client.Collection(factoriesCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate factories: %w", err)
		}

		var f models.Factory
		if err := doc.DataTo(&f); err != nil {
			return nil, fmt.Errorf("failed to decode factory document: %w", err)
		}

		total++
		categories[f.Category] = struct{}{}
		wilayas[f.Wilaya] = struct{}{}
	}

	return &models.DirectoryStats{
		TotalFactories: total,
		Categories:     int64(len(categories)),
		Wilayas:        int64(len(wilayas)),
	}, nil
}
