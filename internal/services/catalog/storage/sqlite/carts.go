package sqlite

import (
	"context"
	"fmt"

	"github.com/louisbranch/storefront/internal/services/catalog/storage"
)

// ListCartItems returns the session's cart lines in the order they were
// first added.
func (s *Store) ListCartItems(ctx context.Context, sessionID string) ([]storage.CartItem, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	sessionID, err := requireValue("session id", sessionID)
	if err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT product_id, product_slug, title, quantity, price_cents, image
		   FROM cart_items
		  WHERE session_id = ?
		  ORDER BY added_at ASC, product_slug ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	items := []storage.CartItem{}
	for rows.Next() {
		var item storage.CartItem
		if err := rows.Scan(
			&item.ProductID,
			&item.ProductSlug,
			&item.Title,
			&item.Quantity,
			&item.PriceCents,
			&item.Image,
		); err != nil {
			return nil, fmt.Errorf("list cart items: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return items, nil
}

// AddCartItem inserts the line with quantity one, or increments an existing
// line for the same product slug.
func (s *Store) AddCartItem(ctx context.Context, sessionID string, item storage.CartItem) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	sessionID, err := requireValue("session id", sessionID)
	if err != nil {
		return err
	}
	productSlug, err := requireValue("product slug", item.ProductSlug)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO cart_items (session_id, product_slug, product_id, title, quantity, price_cents, image, added_at)
		 VALUES (?, ?, ?, ?, 1, ?, ?, ?)
		 ON CONFLICT (session_id, product_slug) DO UPDATE SET quantity = quantity + 1`,
		sessionID,
		productSlug,
		item.ProductID,
		item.Title,
		item.PriceCents,
		item.Image,
		toMillis(s.now()),
	)
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

// DecrementCartItem lowers the line quantity by one and drops the line when
// it reaches zero. Missing lines are not an error.
func (s *Store) DecrementCartItem(ctx context.Context, sessionID, productSlug string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("decrement cart item: begin: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE session_id = ? AND product_slug = ? AND quantity <= 1`,
		sessionID, productSlug,
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("decrement cart item: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE cart_items SET quantity = quantity - 1 WHERE session_id = ? AND product_slug = ?`,
		sessionID, productSlug,
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("decrement cart item: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("decrement cart item: commit: %w", err)
	}
	return nil
}

// RemoveCartItem drops one cart line.
func (s *Store) RemoveCartItem(ctx context.Context, sessionID, productSlug string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM cart_items WHERE session_id = ? AND product_slug = ?`,
		sessionID, productSlug,
	); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

// ClearCart drops every line of the session's cart.
func (s *Store) ClearCart(ctx context.Context, sessionID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM cart_items WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// CountCartItems returns the summed quantity across the session's cart.
func (s *Store) CountCartItems(ctx context.Context, sessionID string) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.sqlDB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM cart_items WHERE session_id = ?`,
		sessionID,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count cart items: %w", err)
	}
	return count, nil
}
