package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/storefront/internal/services/catalog/storage"
)

const categoryColumns = `id, slug, title, sorting, created_at, updated_at`

// CreateCategory inserts one category.
func (s *Store) CreateCategory(ctx context.Context, category storage.Category) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id, err := requireValue("category id", category.ID)
	if err != nil {
		return err
	}
	slug, err := requireValue("category slug", category.Slug)
	if err != nil {
		return err
	}
	title, err := requireValue("category title", category.Title)
	if err != nil {
		return err
	}
	createdAt, updatedAt := s.stamps(category.CreatedAt, category.UpdatedAt)

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO categories (`+categoryColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		id, slug, title, category.Sorting, toMillis(createdAt), toMillis(updatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// UpdateCategory replaces slug, title and sorting of an existing category.
func (s *Store) UpdateCategory(ctx context.Context, category storage.Category) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id, err := requireValue("category id", category.ID)
	if err != nil {
		return err
	}
	slug, err := requireValue("category slug", category.Slug)
	if err != nil {
		return err
	}
	title, err := requireValue("category title", category.Title)
	if err != nil {
		return err
	}
	return s.execAffecting(ctx, "update category",
		`UPDATE categories SET slug = ?, title = ?, sorting = ?, updated_at = ? WHERE id = ?`,
		slug, title, category.Sorting, toMillis(s.now()), id,
	)
}

// DeleteCategory removes one category by id.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id, err := requireValue("category id", id)
	if err != nil {
		return err
	}
	return s.execAffecting(ctx, "delete category", `DELETE FROM categories WHERE id = ?`, id)
}

// GetCategory returns one category by id.
func (s *Store) GetCategory(ctx context.Context, id string) (storage.Category, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Category{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = ?`, strings.TrimSpace(id))
	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Category{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Category{}, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// FindCategory returns one category by slug.
func (s *Store) FindCategory(ctx context.Context, slug string) (storage.Category, bool, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Category{}, false, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = ?`, strings.TrimSpace(slug))
	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Category{}, false, nil
	}
	if err != nil {
		return storage.Category{}, false, fmt.Errorf("find category: %w", err)
	}
	return category, true, nil
}

// ListCategories returns all categories ordered by sorting, then title.
func (s *Store) ListCategories(ctx context.Context) ([]storage.Category, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY sorting ASC, title ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []storage.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(row scanner) (storage.Category, error) {
	var category storage.Category
	var createdAt, updatedAt int64
	if err := row.Scan(
		&category.ID,
		&category.Slug,
		&category.Title,
		&category.Sorting,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.Category{}, err
	}
	category.CreatedAt = fromMillis(createdAt)
	category.UpdatedAt = fromMillis(updatedAt)
	return category, nil
}
