package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewService("segredo-de-teste", time.Hour)

	tokenString, err := svc.GenerateToken(42, "admin", "ADMIN")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateToken_UniqueIDs(t *testing.T) {
	svc := NewService("segredo", time.Hour)

	a, err := svc.GenerateToken(1, "user", "USER")
	require.NoError(t, err)
	b, err := svc.GenerateToken(1, "user", "USER")
	require.NoError(t, err)

	ca, _ := svc.ValidateToken(a)
	cb, _ := svc.ValidateToken(b)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewService("segredo", time.Minute)
	issued := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issued }

	tokenString, err := svc.GenerateToken(1, "user", "USER")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(tokenString)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tokenString, err := NewService("segredo-a", time.Hour).GenerateToken(1, "user", "USER")
	require.NoError(t, err)

	_, err = NewService("segredo-b", time.Hour).ValidateToken(tokenString)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := NewService("segredo", time.Hour).ValidateToken("nao-e-um-jwt")
	assert.Error(t, err)
}

func TestRevocationKey(t *testing.T) {
	assert.Equal(t, "revoked:abc", RevocationKey("abc"))
}
