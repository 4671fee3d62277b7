// Package auth implements credential handling and cookie-session lifecycle:
// registration, login by username or email, rolling session renewal, and
// external identity linkage.
package auth

import (
	"context"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"

	"github.com/google/uuid"
)

// DefaultSessionDuration is how long sessions last without activity.
const DefaultSessionDuration = 30 * 24 * time.Hour

// Service owns everything credential- and session-shaped.
type Service struct {
	store      *storage.Store
	logger     *log.Logger
	sessionTTL time.Duration
}

func NewService(store *storage.Store, logger *log.Logger, sessionTTL time.Duration) *Service {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionDuration
	}
	return &Service{
		store:      store,
		logger:     logger.WithComponent(log.ComponentAuth),
		sessionTTL: sessionTTL,
	}
}

// SessionDuration returns the configured session lifetime.
func (s *Service) SessionDuration() time.Duration { return s.sessionTTL }

// Register creates a local-credential user. Username and email collisions
// are reported as conflicts regardless of case.
func (s *Service) Register(ctx context.Context, username, email, password string) (*core.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if len(password) < minPasswordLength {
		return nil, core.Validationf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, core.StorageError("hash password", err)
	}

	user := &core.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Account:   core.LocalAccount{PasswordHash: hash},
		CreatedAt: time.Now().UTC(),
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.store.FindUserByLogin(ctx, username); err == nil {
		return nil, core.Conflictf("username %q is already taken", username)
	} else if !core.IsNotFound(err) {
		return nil, err
	}
	if email != "" {
		if _, err := s.store.FindUserByLogin(ctx, email); err == nil {
			return nil, core.Conflictf("email %q is already registered", email)
		} else if !core.IsNotFound(err) {
			return nil, err
		}
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		// The pre-checks race with concurrent registrations; the unique
		// indexes are the real guard.
		if isUniqueViolation(err) {
			return nil, core.Conflictf("username or email is already taken")
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered",
		log.FieldOperation, log.OpRegister,
		log.FieldUserID, user.ID,
		log.FieldUsername, user.Username,
	)
	return user, nil
}

// Login verifies local credentials against a username or email, matched
// case-insensitively, and opens a fresh session on success. Failed lookup
// and failed password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, login, password string) (*core.User, *storage.Session, error) {
	user, err := s.store.FindUserByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if core.IsNotFound(err) {
			return nil, nil, core.Unauthenticated()
		}
		return nil, nil, err
	}

	local, ok := user.Account.(core.LocalAccount)
	if !ok || !CheckPassword(password, local.PasswordHash) {
		return nil, nil, core.Unauthenticated()
	}

	sess, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.InfoContext(ctx, "user logged in",
		log.FieldOperation, log.OpLogin,
		log.FieldUserID, user.ID,
	)
	return user, sess, nil
}

// LoginExternal resolves an identity asserted by an external provider,
// creating the user on first sight, and opens a session for it.
func (s *Service) LoginExternal(ctx context.Context, id ExternalIdentity) (*core.User, *storage.Session, error) {
	if err := id.validate(); err != nil {
		return nil, nil, err
	}

	user, err := s.store.FindUserByExternalID(ctx, id.Provider, id.ExternalID)
	if core.IsNotFound(err) {
		user = &core.User{
			ID:          uuid.NewString(),
			Username:    id.Username,
			Email:       id.Email,
			DisplayName: id.DisplayName,
			Account:     core.OAuthAccount{Provider: id.Provider, ExternalID: id.ExternalID},
			CreatedAt:   time.Now().UTC(),
		}
		if verr := user.Validate(); verr != nil {
			return nil, nil, verr
		}
		if cerr := s.store.CreateUser(ctx, user); cerr != nil {
			if isUniqueViolation(cerr) {
				return nil, nil, core.Conflictf("username or email is already taken")
			}
			return nil, nil, cerr
		}
		s.logger.InfoContext(ctx, "external user registered",
			log.FieldOperation, log.OpRegister,
			log.FieldUserID, user.ID,
			log.FieldUsername, user.Username,
		)
	} else if err != nil {
		return nil, nil, err
	}

	sess, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// Authenticate resolves a session token to its user. Sessions past the
// halfway point of their lifetime are renewed, so active users stay logged
// in while idle sessions still expire.
func (s *Service) Authenticate(ctx context.Context, token string) (*core.User, *storage.Session, error) {
	if token == "" {
		return nil, nil, core.Unauthenticated()
	}

	sess, err := s.store.GetSession(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	if sess.ExpiresAt.Sub(now) < s.sessionTTL/2 {
		newExpiry := now.Add(s.sessionTTL)
		if rerr := s.store.RenewSession(ctx, token, newExpiry); rerr == nil {
			sess.ExpiresAt = newExpiry
			sess.LastActivity = now
		}
		// Renewal failure is not fatal; the session is still valid.
	}

	user, err := s.store.GetUserByID(ctx, sess.UserID)
	if err != nil {
		if core.IsNotFound(err) {
			return nil, nil, core.Unauthenticated()
		}
		return nil, nil, err
	}
	return user, sess, nil
}

// Profile returns the user behind a resolved owner id.
func (s *Service) Profile(ctx context.Context, userID string) (*core.User, error) {
	if userID == "" {
		return nil, core.Unauthenticated()
	}
	return s.store.GetUserByID(ctx, userID)
}

// UpdateProfile applies a partial profile update: nil fields are left
// alone, a non-nil prefs map replaces the preference bag wholesale.
func (s *Service) UpdateProfile(ctx context.Context, userID string, displayName, email *string, prefs map[string]string) (*core.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if displayName != nil {
		user.DisplayName = strings.TrimSpace(*displayName)
	}
	if email != nil {
		user.Email = strings.TrimSpace(*email)
	}
	if prefs != nil {
		user.Prefs = prefs
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.UpdateUserProfile(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, core.Conflictf("email %q is already registered", user.Email)
		}
		return nil, err
	}
	return user, nil
}

// Logout discards a session. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.DeleteSession(ctx, token); err != nil {
		return err
	}
	return nil
}

// SweepExpired removes expired sessions. Meant to run periodically.
func (s *Service) SweepExpired(ctx context.Context) error {
	return s.store.DeleteExpiredSessions(ctx)
}

func (s *Service) openSession(ctx context.Context, userID string) (*storage.Session, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return nil, core.StorageError("generate session token", err)
	}
	now := time.Now().UTC()
	sess := &storage.Session{
		Token:        token,
		UserID:       userID,
		ExpiresAt:    now.Add(s.sessionTTL),
		LastActivity: now,
	}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
