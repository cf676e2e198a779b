package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fleet-service-backend/internal/model"
)

func testIssuer() *Issuer {
	return NewIssuer("test-secret", time.Hour, 24*time.Hour)
}

func TestIssueAndVerify(t *testing.T) {
	issuer := testIssuer()
	user := &model.User{ID: 42, Username: "svc", Role: model.RoleService}

	pair, err := issuer.IssuePair(user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	claims, err := issuer.VerifyAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.RoleService, claims.Role)
}

func TestTokenTypeIsEnforced(t *testing.T) {
	issuer := testIssuer()
	user := &model.User{ID: 7, Role: model.RoleClient}

	pair, err := issuer.IssuePair(user)
	require.NoError(t, err)

	// A refresh token never authenticates a request.
	_, err = issuer.VerifyAccess(pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// An access token never mints a new access token.
	_, err = issuer.Refresh(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	access, err := issuer.Refresh(pair.Refresh)
	require.NoError(t, err)
	claims, err := issuer.VerifyAccess(access)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestForeignSecretRejected(t *testing.T) {
	user := &model.User{ID: 1, Role: model.RoleManager}

	pair, err := testIssuer().IssuePair(user)
	require.NoError(t, err)

	other := NewIssuer("other-secret", time.Hour, 24*time.Hour)
	_, err = other.VerifyAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute, 24*time.Hour)
	user := &model.User{ID: 1, Role: model.RoleManager}

	pair, err := issuer.IssuePair(user)
	require.NoError(t, err)

	_, err = issuer.VerifyAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "hunter2"))
	assert.False(t, VerifyPassword(hash, "hunter3"))
	assert.False(t, VerifyPassword("not-a-hash", "hunter2"))
}
