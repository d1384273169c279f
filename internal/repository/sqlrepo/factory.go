// internal/repository/sqlrepo/factory.go
package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dzfactories/backend/internal/models"
	"github.com/dzfactories/backend/internal/repository"
)

const factoryColumns = `id, name, name_ar, description, description_ar, address, address_ar,
	wilaya, category, products, products_ar, gallery, certifications,
	phone, email, website, latitude, longitude,
	views_count, rating, reviews_count, certified, verified, owner_id,
	created_at, updated_at`

// buildListQuery assembles the filtered list statement. Equality filters
// AND together; the search term ORs across the four bilingual text fields.
func buildListQuery(filter repository.FactoryFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Wilaya != "" {
		args = append(args, filter.Wilaya)
		conditions = append(conditions, fmt.Sprintf("wilaya = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(LOWER(name) LIKE $%d OR LOWER(name_ar) LIKE $%d OR LOWER(description) LIKE $%d OR LOWER(description_ar) LIKE $%d)",
			n, n, n, n,
		))
	}

	query := "SELECT " + factoryColumns + " FROM factories"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	return query, args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFactory(row rowScanner) (*models.Factory, error) {
	var f models.Factory
	var products, productsAr, gallery, certifications string

	err := row.Scan(
		&f.ID, &f.Name, &f.NameAr, &f.Description, &f.DescriptionAr,
		&f.Address, &f.AddressAr, &f.Wilaya, &f.Category,
		&products, &productsAr, &gallery, &certifications,
		&f.Phone, &f.Email, &f.Website, &f.Latitude, &f.Longitude,
		&f.ViewsCount, &f.Rating, &f.ReviewsCount, &f.Certified, &f.Verified,
		&f.OwnerID, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, pair := range []struct {
		raw  string
		dest *models.StringList
	}{
		{products, &f.Products},
		{productsAr, &f.ProductsAr},
		{gallery, &f.Gallery},
		{certifications, &f.Certifications},
	} {
		decoded, err := decodeList(pair.raw)
		if err != nil {
			return nil, err
		}
		*pair.dest = decoded
	}

	return &f, nil
}

func (s *Store) ListFactories(ctx context.Context, filter repository.FactoryFilter) ([]models.Factory, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query, args := buildListQuery(filter)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list factories: %w", err)
	}
	defer rows.Close()

	factories := []models.Factory{}
	for rows.Next() {
		f, err := scanFactory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan factory row: %w", err)
		}
		factories = append(factories, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate factory rows: %w", err)
	}

	return factories, nil
}

func (s *Store) GetFactory(ctx context.Context, id string) (*models.Factory, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := "SELECT " + factoryColumns + " FROM factories WHERE id = $1"
	f, err := scanFactory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get factory: %w", err)
	}

	return f, nil
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

	encoded := make([]string, 4)
	for i, list := range []models.StringList{
		factory.Products, factory.ProductsAr, factory.Gallery, factory.Certifications,
	} {
		enc, err := encodeList(list)
		if err != nil {
			return nil, err
		}
		encoded[i] = enc
	}

	query := `INSERT INTO factories (` + factoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`

	_, err := s.db.ExecContext(ctx, query,
		factory.ID, factory.Name, factory.NameAr, factory.Description, factory.DescriptionAr,
		factory.Address, factory.AddressAr, factory.Wilaya, factory.Category,
		encoded[0], encoded[1], encoded[2], encoded[3],
		factory.Phone, factory.Email, factory.Website, factory.Latitude, factory.Longitude,
		factory.ViewsCount, factory.Rating, factory.ReviewsCount,
		factory.Certified, factory.Verified, factory.OwnerID,
		factory.CreatedAt, factory.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create factory: %w", err)
	}

	return factory, nil
}

func (s *Store) UpdateFactory(ctx context.Context, id string, update *models.FactoryUpdate) (*models.Factory, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	fields := update.Fields()
	fields["updated_at"] = time.Now().UTC()

	// Deterministic column order keeps statements stable and testable.
	columns := make([]string, 0, len(fields))
	for col := range fields {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	var sets []string
	var args []interface{}
	for _, col := range columns {
		args = append(args, fields[col])
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE factories SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update factory: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}

	return s.GetFactory(ctx, id)
}

func (s *Store) DeleteFactory(ctx context.Context, id string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := s.db.ExecContext(ctx, "DELETE FROM factories WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete factory: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

func (s *Store) IncrementViews(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		"UPDATE factories SET views_count = views_count + 1 WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}

	return nil
}

func (s *Store) Stats(ctx context.Context) (*models.DirectoryStats, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var stats models.DirectoryStats
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COUNT(DISTINCT category), COUNT(DISTINCT wilaya) FROM factories",
	).Scan(&stats.TotalFactories, &stats.Categories, &stats.Wilayas)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}

	return &stats, nil
}
