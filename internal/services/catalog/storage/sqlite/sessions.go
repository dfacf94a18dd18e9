package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/storefront/internal/services/catalog/storage"
)

// CreateSession inserts one session.
func (s *Store) CreateSession(ctx context.Context, session storage.Session) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id, err := requireValue("session id", session.ID)
	if err != nil {
		return err
	}
	if session.ExpiresAt.IsZero() {
		return fmt.Errorf("session expiry is required")
	}
	createdAt, _ := s.stamps(session.CreatedAt, session.CreatedAt)

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO sessions (id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		id,
		strings.TrimSpace(session.UserID),
		toMillis(createdAt),
		toMillis(session.ExpiresAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSession returns a session that has not expired at now.
func (s *Store) GetSession(ctx context.Context, id string, now time.Time) (storage.Session, bool, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Session{}, false, err
	}
	var session storage.Session
	var createdAt, expiresAt int64
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, user_id, created_at, expires_at FROM sessions WHERE id = ? AND expires_at > ?`,
		strings.TrimSpace(id),
		toMillis(now),
	).Scan(&session.ID, &session.UserID, &createdAt, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Session{}, false, nil
	}
	if err != nil {
		return storage.Session{}, false, fmt.Errorf("get session: %w", err)
	}
	session.CreatedAt = fromMillis(createdAt)
	session.ExpiresAt = fromMillis(expiresAt)
	return session, true, nil
}

// SetSessionUser attaches or, with an empty userID, detaches an account.
func (s *Store) SetSessionUser(ctx context.Context, id, userID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id, err := requireValue("session id", id)
	if err != nil {
		return err
	}
	return s.execAffecting(ctx, "set session user",
		`UPDATE sessions SET user_id = ? WHERE id = ?`,
		strings.TrimSpace(userID), id,
	)
}

// DeleteExpiredSessions removes sessions expired at now along with their
// cart lines.
func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, toMillis(now))
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return deleted, nil
}
