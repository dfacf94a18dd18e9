package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/storefront/internal/services/catalog/storage"
)

const userColumns = `id, name, email, username, password_hash, admin, created_at`

// CreateUser inserts one account. Usernames are unique.
func (s *Store) CreateUser(ctx context.Context, user storage.User) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id, err := requireValue("user id", user.ID)
	if err != nil {
		return err
	}
	username, err := requireValue("username", user.Username)
	if err != nil {
		return err
	}
	if len(user.PasswordHash) == 0 {
		return fmt.Errorf("password hash is required")
	}
	createdAt, _ := s.stamps(user.CreatedAt, user.CreatedAt)

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		strings.TrimSpace(user.Name),
		strings.TrimSpace(user.Email),
		username,
		user.PasswordHash,
		user.Admin,
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser returns one account by id.
func (s *Store) GetUser(ctx context.Context, id string) (storage.User, error) {
	if err := s.ready(ctx); err != nil {
		return storage.User{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, strings.TrimSpace(id))
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.User{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// FindUserByUsername returns one account by username.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (storage.User, bool, error) {
	if err := s.ready(ctx); err != nil {
		return storage.User{}, false, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, strings.TrimSpace(username))
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.User{}, false, nil
	}
	if err != nil {
		return storage.User{}, false, fmt.Errorf("find user: %w", err)
	}
	return user, true, nil
}

func scanUser(row scanner) (storage.User, error) {
	var user storage.User
	var createdAt int64
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.Admin,
		&createdAt,
	); err != nil {
		return storage.User{}, err
	}
	user.CreatedAt = fromMillis(createdAt)
	return user, nil
}
