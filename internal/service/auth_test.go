package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("open sesame"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService("test-secret", string(hash))
}

func TestLoginAndValidate(t *testing.T) {
	s := newTestAuthService(t)

	token, err := s.Login("open sesame")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.NotEqual(t, claims.SessionID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestAuthService(t)

	_, err := s.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	s := newTestAuthService(t)

	_, err := s.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	s := newTestAuthService(t)
	other := NewAuthService("other-secret", s.sitePasswordHash)

	token, err := other.Login("open sesame")
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}
