// internal/repository/gormrepo/factory.go
package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dzfactories/backend/internal/models"
	"github.com/dzfactories/backend/internal/repository"
)

func (s *Store) ListFactories(ctx context.Context, filter repository.FactoryFilter) ([]models.Factory, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := s.db.WithContext(ctx).Model(&models.Factory{})

	if filter.Wilaya != "" {
		query = query.Where("wilaya = ?", filter.Wilaya)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(name_ar) LIKE ? OR LOWER(description) LIKE ? OR LOWER(description_ar) LIKE ?",
			term, term, term, term,
		)
	}

	factories := []models.Factory{}
	if err := query.Order("created_at DESC").Find(&factories).Error; err != nil {
		return nil, fmt.Errorf("failed to list factories: %w", err)
	}

	return factories, nil
}

func (s *Store) GetFactory(ctx context.Context, id string) (*models.Factory, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var factory models.Factory
	if err := s.db.WithContext(ctx).First(&factory, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get factory: %w", err)
	}

	return &factory, nil
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

	if err := s.db.WithContext(ctx).Create(factory).Error; err != nil {
		return nil, fmt.Errorf("failed to create factory: %w", err)
	}

	return factory, nil
}

func (s *Store) UpdateFactory(ctx context.Context, id string, update *models.FactoryUpdate) (*models.Factory, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var factory models.Factory
	if err := s.db.WithContext(ctx).First(&factory, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find factory: %w", err)
	}

	fields := update.Fields()
	fields["updated_at"] = time.Now().UTC()

	if err := s.db.WithContext(ctx).Model(&factory).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update factory: %w", err)
	}

	if err := s.db.WithContext(ctx).First(&factory, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload factory: %w", err)
	}

	return &factory, nil
}

func (s *Store) DeleteFactory(ctx context.Context, id string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result := s.db.WithContext(ctx).Delete(&models.Factory{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete factory: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (s *Store) IncrementViews(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return s.db.WithContext(ctx).Model(&models.Factory{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

func (s *Store) Stats(ctx context.Context) (*models.DirectoryStats, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var stats models.DirectoryStats

	if err := s.db.WithContext(ctx).Model(&models.Factory{}).Count(&stats.TotalFactories).Error; err != nil {
		return nil, fmt.Errorf("failed to count factories: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&models.Factory{}).Distinct("category").Count(&stats.Categories).Error; err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&models.Factory{}).Distinct("wilaya").Count(&stats.Wilayas).Error; err != nil {
		return nil, fmt.Errorf("failed to count wilayas: %w", err)
	}

	return &stats, nil
}
