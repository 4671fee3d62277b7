package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"fintrack/internal/core"
)

// CreateUser inserts a user. The caller assigns the ID and validates the
// entity; uniqueness of username/email is enforced by the schema as a
// backstop behind the service's own duplicate check.
func (s *Store) CreateUser(ctx context.Context, u *core.User) error {
	prefs, err := json.Marshal(prefsOrEmpty(u.Prefs))
	if err != nil {
		return core.StorageError("encode user prefs", err)
	}

	var email any
	if u.Email != "" {
		email = u.Email
	}

	kind, passwordHash, externalID := accountColumns(u.Account)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, display_name, account_kind, password_hash, external_id, prefs, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, email, u.DisplayName, kind, passwordHash, externalID, string(prefs), u.CreatedAt.UTC(),
	)
	if err != nil {
		return core.StorageError("insert user", err)
	}
	return nil
}

// GetUserByID loads a user by identifier.
func (s *Store) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, userSelect+" WHERE id = ?", id))
}

// FindUserByLogin looks a user up by username or email, case-insensitively.
func (s *Store) FindUserByLogin(ctx context.Context, login string) (*core.User, error) {
	row := s.db.QueryRowContext(ctx,
		userSelect+" WHERE LOWER(username) = LOWER(?) OR (email IS NOT NULL AND LOWER(email) = LOWER(?))",
		login, login,
	)
	return s.scanUser(row)
}

// FindUserByExternalID looks up the user linked to an OAuth identity.
func (s *Store) FindUserByExternalID(ctx context.Context, provider core.AccountKind, externalID string) (*core.User, error) {
	row := s.db.QueryRowContext(ctx,
		userSelect+" WHERE account_kind = ? AND external_id = ?",
		string(provider), externalID,
	)
	return s.scanUser(row)
}

// UpdateUserProfile applies profile/settings changes. Credentials are not
// touched here.
func (s *Store) UpdateUserProfile(ctx context.Context, u *core.User) error {
	prefs, err := json.Marshal(prefsOrEmpty(u.Prefs))
	if err != nil {
		return core.StorageError("encode user prefs", err)
	}

	var email any
	if u.Email != "" {
		email = u.Email
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET email = ?, display_name = ?, prefs = ? WHERE id = ?",
		email, u.DisplayName, string(prefs), u.ID,
	)
	if err != nil {
		return core.StorageError("update user", err)
	}
	return requireAffected(res, "user")
}

const userSelect = `
	SELECT id, username, email, display_name, account_kind, password_hash, external_id, prefs, created_at
	FROM users`

func (s *Store) scanUser(row *sql.Row) (*core.User, error) {
	var (
		u            core.User
		email        sql.NullString
		kind         string
		passwordHash sql.NullString
		externalID   sql.NullString
		prefs        string
		createdAt    time.Time
	)
	err := row.Scan(&u.ID, &u.Username, &email, &u.DisplayName, &kind, &passwordHash, &externalID, &prefs, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NotFound("user")
	}
	if err != nil {
		return nil, core.StorageError("scan user", err)
	}

	u.Email = email.String
	u.CreatedAt = createdAt
	if err := json.Unmarshal([]byte(prefs), &u.Prefs); err != nil {
		return nil, core.StorageError("decode user prefs", err)
	}

	switch core.AccountKind(kind) {
	case core.AccountLocal:
		u.Account = core.LocalAccount{PasswordHash: passwordHash.String}
	default:
		u.Account = core.OAuthAccount{Provider: core.AccountKind(kind), ExternalID: externalID.String}
	}
	return &u, nil
}

func accountColumns(a core.Account) (kind string, passwordHash, externalID any) {
	switch acc := a.(type) {
	case core.LocalAccount:
		return string(core.AccountLocal), acc.PasswordHash, nil
	case core.OAuthAccount:
		return string(acc.Provider), nil, acc.ExternalID
	default:
		return string(core.AccountLocal), nil, nil
	}
}

func prefsOrEmpty(p map[string]string) map[string]string {
	if p == nil {
		return map[string]string{}
	}
	return p
}

// requireAffected converts a zero-row mutation into the uniform not-found
// error, keeping cross-owner probes indistinguishable from plain absence.
func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return core.StorageError("rows affected", err)
	}
	if n == 0 {
		return core.NotFound(entity)
	}
	return nil
}
