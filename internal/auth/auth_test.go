package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswords_HashAndVerify(t *testing.T) {
	p := Passwords{Cost: bcrypt.MinCost}

	hash, err := p.Hash("s3nha")
	require.NoError(t, err)
	assert.NotEqual(t, "s3nha", hash)

	assert.NoError(t, p.Verify(hash, "s3nha"))
	assert.ErrorIs(t, p.Verify(hash, "errada"), ErrInvalidCredentials)
	assert.ErrorIs(t, p.Verify("not-a-hash", "s3nha"), ErrInvalidCredentials)
}

func TestNewTokens_Validation(t *testing.T) {
	_, err := NewTokens("", time.Minute)
	assert.ErrorIs(t, err, ErrNoSecret)

	_, err = NewTokens("secret", 0)
	assert.Error(t, err)
}

func TestTokens_RoundTrip(t *testing.T) {
	tokens, err := NewTokens("secret", 30*time.Minute)
	require.NoError(t, err)

	signed, err := tokens.Issue("ana", "admin")
	require.NoError(t, err)

	claims, err := tokens.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Subject)
	assert.Equal(t, "admin", claims.Perfil)
}

func TestTokens_Expired(t *testing.T) {
	tokens, err := NewTokens("secret", time.Minute)
	require.NoError(t, err)

	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issued }
	signed, err := tokens.Issue("ana", "admin")
	require.NoError(t, err)

	tokens.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = tokens.Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestTokens_WrongSecret(t *testing.T) {
	a, err := NewTokens("secret-a", time.Minute)
	require.NoError(t, err)
	b, err := NewTokens("secret-b", time.Minute)
	require.NoError(t, err)

	signed, err := a.Issue("ana", "")
	require.NoError(t, err)

	_, err = b.Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_Garbage(t *testing.T) {
	tokens, err := NewTokens("secret", time.Minute)
	require.NoError(t, err)

	_, err = tokens.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_RejectsOtherAlgorithms(t *testing.T) {
	tokens, err := NewTokens("secret", time.Minute)
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "ana"})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tokens.Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
