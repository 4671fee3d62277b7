package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func discardLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

type AuthTestSuite struct {
	suite.Suite
	store *storage.Store
	svc   *Service
	ctx   context.Context
}

func (s *AuthTestSuite) SetupTest() {
	store, err := storage.Open(":memory:")
	require.NoError(s.T(), err)
	s.store = store
	s.svc = NewService(store, discardLogger(), time.Hour)
	s.ctx = context.Background()
}

func (s *AuthTestSuite) TearDownTest() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *AuthTestSuite) TestRegisterAndLogin() {
	user, err := s.svc.Register(s.ctx, "alice", "alice@example.com", "correct horse")
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), user.ID)

	got, sess, err := s.svc.Login(s.ctx, "alice", "correct horse")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), user.ID, got.ID)
	assert.NotEmpty(s.T(), sess.Token)

	// Email works as the login handle too, in any case.
	_, _, err = s.svc.Login(s.ctx, "ALICE@EXAMPLE.COM", "correct horse")
	assert.NoError(s.T(), err)
}

func (s *AuthTestSuite) TestRegisterRejectsShortPassword() {
	_, err := s.svc.Register(s.ctx, "alice", "alice@example.com", "short")
	assert.True(s.T(), core.IsValidation(err))
}

func (s *AuthTestSuite) TestRegisterConflicts() {
	_, err := s.svc.Register(s.ctx, "alice", "alice@example.com", "correct horse")
	require.NoError(s.T(), err)

	_, err = s.svc.Register(s.ctx, "ALICE", "other@example.com", "correct horse")
	assert.True(s.T(), core.IsConflict(err), "username collision should conflict")

	_, err = s.svc.Register(s.ctx, "alice2", "Alice@Example.com", "correct horse")
	assert.True(s.T(), core.IsConflict(err), "email collision should conflict")
}

func (s *AuthTestSuite) TestLoginBadCredentials() {
	_, err := s.svc.Register(s.ctx, "alice", "alice@example.com", "correct horse")
	require.NoError(s.T(), err)

	_, _, err = s.svc.Login(s.ctx, "alice", "wrong password")
	assert.True(s.T(), core.IsUnauthenticated(err))

	_, _, err = s.svc.Login(s.ctx, "nobody", "correct horse")
	assert.True(s.T(), core.IsUnauthenticated(err))
}

func (s *AuthTestSuite) TestAuthenticateAndLogout() {
	_, err := s.svc.Register(s.ctx, "alice", "alice@example.com", "correct horse")
	require.NoError(s.T(), err)
	user, sess, err := s.svc.Login(s.ctx, "alice", "correct horse")
	require.NoError(s.T(), err)

	got, _, err := s.svc.Authenticate(s.ctx, sess.Token)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), user.ID, got.ID)

	require.NoError(s.T(), s.svc.Logout(s.ctx, sess.Token))
	_, _, err = s.svc.Authenticate(s.ctx, sess.Token)
	assert.True(s.T(), core.IsUnauthenticated(err))

	_, _, err = s.svc.Authenticate(s.ctx, "")
	assert.True(s.T(), core.IsUnauthenticated(err))
}

func (s *AuthTestSuite) TestRollingRenewal() {
	_, err := s.svc.Register(s.ctx, "alice", "alice@example.com", "correct horse")
	require.NoError(s.T(), err)
	_, sess, err := s.svc.Login(s.ctx, "alice", "correct horse")
	require.NoError(s.T(), err)

	// Push the session into the second half of its lifetime.
	nearExpiry := time.Now().Add(10 * time.Minute).UTC()
	require.NoError(s.T(), s.store.RenewSession(s.ctx, sess.Token, nearExpiry))

	_, renewed, err := s.svc.Authenticate(s.ctx, sess.Token)
	require.NoError(s.T(), err)
	assert.True(s.T(), renewed.ExpiresAt.After(nearExpiry), "session should have been renewed")
}

func (s *AuthTestSuite) TestLoginExternal() {
	id := ExternalIdentity{
		Provider:    core.AccountGoogle,
		ExternalID:  "g-42",
		Username:    "carol",
		DisplayName: "Carol",
	}

	user, sess, err := s.svc.LoginExternal(s.ctx, id)
	require.NoError(s.T(), err)
	assert.NotEmpty(s.T(), sess.Token)
	assert.Equal(s.T(), core.AccountGoogle, user.Account.Kind())

	// Second login resolves to the same user instead of creating another.
	again, _, err := s.svc.LoginExternal(s.ctx, id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), user.ID, again.ID)

	_, _, err = s.svc.LoginExternal(s.ctx, ExternalIdentity{Provider: "github", ExternalID: "x"})
	assert.True(s.T(), core.IsValidation(err))
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}
