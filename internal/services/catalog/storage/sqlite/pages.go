package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/storefront/internal/services/catalog/storage"
)

const pageColumns = `id, slug, title, content, sorting, created_at, updated_at`

// CreatePage inserts one page.
func (s *Store) CreatePage(ctx context.Context, page storage.Page) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id, err := requireValue("page id", page.ID)
	if err != nil {
		return err
	}
	slug, err := requireValue("page slug", page.Slug)
	if err != nil {
		return err
	}
	title, err := requireValue("page title", page.Title)
	if err != nil {
		return err
	}
	createdAt, updatedAt := s.stamps(page.CreatedAt, page.UpdatedAt)

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO pages (`+pageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, slug, title, page.Content, page.Sorting, toMillis(createdAt), toMillis(updatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create page: %w", err)
	}
	return nil
}

// UpdatePage replaces slug, title and content of an existing page. Sorting
// is owned by ReorderPages.
func (s *Store) UpdatePage(ctx context.Context, page storage.Page) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id, err := requireValue("page id", page.ID)
	if err != nil {
		return err
	}
	slug, err := requireValue("page slug", page.Slug)
	if err != nil {
		return err
	}
	title, err := requireValue("page title", page.Title)
	if err != nil {
		return err
	}
	return s.execAffecting(ctx, "update page",
		`UPDATE pages SET slug = ?, title = ?, content = ?, updated_at = ? WHERE id = ?`,
		slug, title, page.Content, toMillis(s.now()), id,
	)
}

// DeletePage removes one page by id.
func (s *Store) DeletePage(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id, err := requireValue("page id", id)
	if err != nil {
		return err
	}
	return s.execAffecting(ctx, "delete page", `DELETE FROM pages WHERE id = ?`, id)
}

// GetPage returns one page by id.
func (s *Store) GetPage(ctx context.Context, id string) (storage.Page, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Page{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE id = ?`, strings.TrimSpace(id))
	page, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Page{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Page{}, fmt.Errorf("get page: %w", err)
	}
	return page, nil
}

// FindPage returns one page by slug.
func (s *Store) FindPage(ctx context.Context, slug string) (storage.Page, bool, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Page{}, false, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE slug = ?`, strings.TrimSpace(slug))
	page, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Page{}, false, nil
	}
	if err != nil {
		return storage.Page{}, false, fmt.Errorf("find page: %w", err)
	}
	return page, true, nil
}

// ListPages returns all pages ordered by sorting.
func (s *Store) ListPages(ctx context.Context) ([]storage.Page, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+pageColumns+` FROM pages ORDER BY sorting ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	pages := []storage.Page{}
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("list pages: %w", err)
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

// ReorderPages assigns sorting 1..n in the order of ids inside one
// transaction.
func (s *Store) ReorderPages(ctx context.Context, ids []string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("reorder pages: begin: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `UPDATE pages SET sorting = ?, updated_at = ? WHERE id = ?`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("reorder pages: prepare: %w", err)
	}
	defer stmt.Close()

	now := toMillis(s.now())
	for i, id := range ids {
		if _, err := stmt.ExecContext(ctx, i+1, now, strings.TrimSpace(id)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("reorder pages: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("reorder pages: commit: %w", err)
	}
	return nil
}

func scanPage(row scanner) (storage.Page, error) {
	var page storage.Page
	var createdAt, updatedAt int64
	if err := row.Scan(
		&page.ID,
		&page.Slug,
		&page.Title,
		&page.Content,
		&page.Sorting,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.Page{}, err
	}
	page.CreatedAt = fromMillis(createdAt)
	page.UpdatedAt = fromMillis(updatedAt)
	return page, nil
}
