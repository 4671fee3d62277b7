package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fintrack/internal/core"
)

// Session links an opaque token to a user for the session-based identity
// provider at the boundary.
type Session struct {
	Token        string
	UserID       string
	ExpiresAt    time.Time
	LastActivity time.Time
}

// CreateSession stores a new session token.
func (s *Store) CreateSession(ctx context.Context, sess *Session) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, expires_at, last_activity) VALUES (?, ?, ?, ?)",
		sess.Token, sess.UserID, sess.ExpiresAt.UTC(), sess.LastActivity.UTC(),
	)
	if err != nil {
		return core.StorageError("insert session", err)
	}
	return nil
}

// GetSession loads a session that has not yet expired.
func (s *Store) GetSession(ctx context.Context, token string) (*Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx,
		"SELECT token, user_id, expires_at, last_activity FROM sessions WHERE token = ? AND expires_at > ?",
		token, time.Now().UTC(),
	).Scan(&sess.Token, &sess.UserID, &sess.ExpiresAt, &sess.LastActivity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.Unauthenticated()
	}
	if err != nil {
		return nil, core.StorageError("scan session", err)
	}
	return &sess, nil
}

// RenewSession pushes a session's expiry forward.
func (s *Store) RenewSession(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE sessions SET expires_at = ?, last_activity = ? WHERE token = ?",
		expiresAt.UTC(), time.Now().UTC(), token,
	)
	if err != nil {
		return core.StorageError("renew session", err)
	}
	return nil
}

// DeleteSession removes a session, signing the user out.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
	if err != nil {
		return core.StorageError("delete session", err)
	}
	return nil
}

// DeleteExpiredSessions sweeps sessions past their expiry.
func (s *Store) DeleteExpiredSessions(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= ?", time.Now().UTC())
	if err != nil {
		return core.StorageError("delete expired sessions", err)
	}
	return nil
}
