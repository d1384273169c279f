// internal/handlers/store_fake_test.go
package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dzfactories/backend/internal/models"
	"github.com/dzfactories/backend/internal/repository"
)

// fakeStore is an in-memory repository.Store honoring the same contract
// the real adapters do: equality facets, substring search over the four
// bilingual text fields, newest-first ordering and true-once deletes.
type fakeStore struct {
	mtx       sync.Mutex
	factories map[string]models.Factory
	users     map[string]models.User
	reviews   map[string][]models.Review
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		factories: make(map[string]models.Factory),
		users:     make(map[string]models.User),
		reviews:   make(map[string][]models.Review),
	}
}

func (s *fakeStore) ListFactories(_ context.Context, filter repository.FactoryFilter) ([]models.Factory, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	term := strings.ToLower(filter.Search)
	out := []models.Factory{}
	for _, f := range s.factories {
		if filter.Wilaya != "" && f.Wilaya != filter.Wilaya {
			continue
		}
		if filter.Category != "" && f.Category != filter.Category {
			continue
		}
		if term != "" {
			matched := false
			for _, field := range []string{f.Name, f.NameAr, f.Description, f.DescriptionAr} {
				if strings.Contains(strings.ToLower(field), term) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		out = append(out, f)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *fakeStore) GetFactory(_ context.Context, id string) (*models.Factory, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	f, ok := s.factories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &f, nil
}

func (s *fakeStore) CreateFactory(_ context.Context, factory *models.Factory) (*models.Factory, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	now := time.Now().UTC()
	factory.ID = uuid.New().String()
	factory.ViewsCount = 0
	factory.Rating = 0
	factory.ReviewsCount = 0
	factory.CreatedAt = now
	factory.UpdatedAt = now
	factory.NormalizeLists()

	s.factories[factory.ID] = *factory
	return factory, nil
}

func (s *fakeStore) UpdateFactory(_ context.Context, id string, update *models.FactoryUpdate) (*models.Factory, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	f, ok := s.factories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	if update.Name != nil {
		f.Name = *update.Name
	}
	if update.NameAr != nil {
		f.NameAr = *update.NameAr
	}
	if update.Description != nil {
		f.Description = *update.Description
	}
	if update.DescriptionAr != nil {
		f.DescriptionAr = *update.DescriptionAr
	}
	if update.Wilaya != nil {
		f.Wilaya = *update.Wilaya
	}
	if update.Category != nil {
		f.Category = *update.Category
	}
	if update.Phone != nil {
		f.Phone = *update.Phone
	}
	if update.Verified != nil {
		f.Verified = *update.Verified
	}
	if update.Rating != nil {
		f.Rating = *update.Rating
	}
	if update.ReviewsCount != nil {
		f.ReviewsCount = *update.ReviewsCount
	}
	f.UpdatedAt = time.Now().UTC()

	s.factories[id] = f
	return &f, nil
}

func (s *fakeStore) DeleteFactory(_ context.Context, id string) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.factories[id]; !ok {
		return false, nil
	}
	delete(s.factories, id)
	return true, nil
}

func (s *fakeStore) IncrementViews(_ context.Context, id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if f, ok := s.factories[id]; ok {
		f.ViewsCount++
		s.factories[id] = f
	}
	return nil
}

func (s *fakeStore) Stats(_ context.Context) (*models.DirectoryStats, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	categories := make(map[string]struct{})
	wilayas := make(map[string]struct{})
	for _, f := range s.factories {
		categories[f.Category] = struct{}{}
		wilayas[f.Wilaya] = struct{}{}
	}

	return &models.DirectoryStats{
		TotalFactories: int64(len(s.factories)),
		Categories:     int64(len(categories)),
		Wilayas:        int64(len(wilayas)),
	}, nil
}

func (s *fakeStore) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.users[user.ID] = *user
	return user, nil
}

func (s *fakeStore) UpdateUser(_ context.Context, id string, update *models.UserUpdate) (*models.User, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Picture != nil {
		u.Picture = *update.Picture
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	u.UpdatedAt = time.Now().UTC()

	s.users[id] = u
	return &u, nil
}

func (s *fakeStore) ListReviews(_ context.Context, factoryID string) ([]models.Review, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	reviews := append([]models.Review{}, s.reviews[factoryID]...)
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (s *fakeStore) CreateReview(_ context.Context, review *models.Review) (*models.Review, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.reviews[review.FactoryID] = append(s.reviews[review.FactoryID], *review)
	return review, nil
}

func (s *fakeStore) Close() error {
	return nil
}
