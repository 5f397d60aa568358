// File: store/product_store.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dalibouzir/MeriemBooking-sub000/models"
)

// ProductStore manages the downloadable-resource catalogue.
type ProductStore struct {
	db *sqlx.DB
}

// NewProductStore creates a ProductStore on the given connection.
func NewProductStore(db *sqlx.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, slug, title_ar, title_en, description_ar, description_en,
	file_url, cover_url, is_free, price_cents, download_count, created_at`

// List returns every product, newest first.
func (s *ProductStore) List(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.SelectContext(ctx, &products,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetBySlug returns one product by its public slug.
func (s *ProductStore) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	err := s.db.GetContext(ctx, &p,
		`SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", slug, err)
	}
	return &p, nil
}

// Create inserts a new product and returns it with its generated id.
func (s *ProductStore) Create(ctx context.Context, p models.Product) (*models.Product, error) {
	p.ID = uuid.NewString()
	err := s.db.GetContext(ctx, &p.CreatedAt,
		`INSERT INTO products (id, slug, title_ar, title_en, description_ar, description_en,
		                       file_url, cover_url, is_free, price_cents)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at`,
		p.ID, p.Slug, p.TitleAr, p.TitleEn, p.DescriptionAr, p.DescriptionEn,
		p.FileURL, p.CoverURL, p.IsFree, p.PriceCents)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

// Update overwrites a product's editable fields.
func (s *ProductStore) Update(ctx context.Context, p models.Product) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET slug = $1, title_ar = $2, title_en = $3,
		        description_ar = $4, description_en = $5, file_url = $6,
		        cover_url = $7, is_free = $8, price_cents = $9
		 WHERE id = $10`,
		p.Slug, p.TitleAr, p.TitleEn, p.DescriptionAr, p.DescriptionEn,
		p.FileURL, p.CoverURL, p.IsFree, p.PriceCents, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementDownloads bumps the download counter. Analytics only; callers
// log failures and move on.
func (s *ProductStore) IncrementDownloads(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE products SET download_count = download_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment downloads: %w", err)
	}
	return nil
}
