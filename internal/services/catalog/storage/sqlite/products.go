package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/storefront/internal/services/catalog/storage"
)

const productColumns = `id, slug, title, category_slug, description, price_cents, image, created_at, updated_at`

// CreateProduct inserts one product.
func (s *Store) CreateProduct(ctx context.Context, product storage.Product) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id, err := requireValue("product id", product.ID)
	if err != nil {
		return err
	}
	slug, err := requireValue("product slug", product.Slug)
	if err != nil {
		return err
	}
	title, err := requireValue("product title", product.Title)
	if err != nil {
		return err
	}
	if product.PriceCents < 0 {
		return fmt.Errorf("product price must not be negative")
	}
	createdAt, updatedAt := s.stamps(product.CreatedAt, product.UpdatedAt)

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		slug,
		title,
		strings.TrimSpace(product.CategorySlug),
		product.Description,
		product.PriceCents,
		strings.TrimSpace(product.Image),
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// UpdateProduct replaces the mutable fields of an existing product.
func (s *Store) UpdateProduct(ctx context.Context, product storage.Product) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id, err := requireValue("product id", product.ID)
	if err != nil {
		return err
	}
	slug, err := requireValue("product slug", product.Slug)
	if err != nil {
		return err
	}
	title, err := requireValue("product title", product.Title)
	if err != nil {
		return err
	}
	if product.PriceCents < 0 {
		return fmt.Errorf("product price must not be negative")
	}
	return s.execAffecting(ctx, "update product",
		`UPDATE products
		    SET slug = ?, title = ?, category_slug = ?, description = ?,
		        price_cents = ?, image = ?, updated_at = ?
		  WHERE id = ?`,
		slug,
		title,
		strings.TrimSpace(product.CategorySlug),
		product.Description,
		product.PriceCents,
		strings.TrimSpace(product.Image),
		toMillis(s.now()),
		id,
	)
}

// DeleteProduct removes one product by id.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id, err := requireValue("product id", id)
	if err != nil {
		return err
	}
	return s.execAffecting(ctx, "delete product", `DELETE FROM products WHERE id = ?`, id)
}

// GetProduct returns one product by id.
func (s *Store) GetProduct(ctx context.Context, id string) (storage.Product, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Product{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, strings.TrimSpace(id))
	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Product{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Product{}, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// FindProduct returns one product by slug.
func (s *Store) FindProduct(ctx context.Context, slug string) (storage.Product, bool, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Product{}, false, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE slug = ?`, strings.TrimSpace(slug))
	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Product{}, false, nil
	}
	if err != nil {
		return storage.Product{}, false, fmt.Errorf("find product: %w", err)
	}
	return product, true, nil
}

// ListProducts returns every product in insertion order.
func (s *Store) ListProducts(ctx context.Context) ([]storage.Product, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.queryProducts(ctx, "list products",
		`SELECT `+productColumns+` FROM products ORDER BY rowid ASC`)
}

// ListProductsByCategory returns products filed under categorySlug in
// insertion order.
func (s *Store) ListProductsByCategory(ctx context.Context, categorySlug string) ([]storage.Product, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.queryProducts(ctx, "list products by category",
		`SELECT `+productColumns+` FROM products WHERE category_slug = ? ORDER BY rowid ASC`,
		strings.TrimSpace(categorySlug),
	)
}

// CountProducts returns the number of stored products.
func (s *Store) CountProducts(ctx context.Context) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

func (s *Store) queryProducts(ctx context.Context, op, query string, args ...any) ([]storage.Product, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	products := []storage.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func scanProduct(row scanner) (storage.Product, error) {
	var product storage.Product
	var createdAt, updatedAt int64
	if err := row.Scan(
		&product.ID,
		&product.Slug,
		&product.Title,
		&product.CategorySlug,
		&product.Description,
		&product.PriceCents,
		&product.Image,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.Product{}, err
	}
	product.CreatedAt = fromMillis(createdAt)
	product.UpdatedAt = fromMillis(updatedAt)
	return product, nil
}
