package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackyeh168/giftcard_pos/src/internal/application/auth"
	"github.com/jackyeh168/giftcard_pos/src/internal/domain/staff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestBcryptPinHasher_HashAndCompare(t *testing.T) {
	hasher := NewBcryptPinHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("4321")

	require.NoError(t, err)
	assert.NotEqual(t, "4321", hash)
	assert.True(t, hasher.Compare(hash, "4321"))
	assert.False(t, hasher.Compare(hash, "1234"))
	assert.False(t, hasher.Compare("not-a-hash", "4321"))
}

func TestBcryptPinHasher_SaltsEachHash(t *testing.T) {
	hasher := NewBcryptPinHasher(bcrypt.MinCost)

	a, err := hasher.Hash("0000")
	require.NoError(t, err)
	b, err := hasher.Hash("0000")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestJWTTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewJWTTokenIssuer(testSecret)
	require.NoError(t, err)
	now := time.Now().UTC().Truncate(time.Second)

	token, err := issuer.Issue(auth.SessionClaims{
		StaffID:   "5f1c6a9e-2d3b-4c5d-8e7f-9a0b1c2d3e4f",
		Name:      "Alice",
		Role:      staff.RoleAdmin,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	require.NoError(t, err)

	claims, err := issuer.Parse(token)

	require.NoError(t, err)
	assert.Equal(t, "5f1c6a9e-2d3b-4c5d-8e7f-9a0b1c2d3e4f", claims.StaffID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, staff.RoleAdmin, claims.Role)
	assert.True(t, claims.ExpiresAt.Equal(now.Add(time.Hour)))
}

func TestJWTTokenIssuer_RejectsExpiredAndForeignTokens(t *testing.T) {
	issuer, err := NewJWTTokenIssuer(testSecret)
	require.NoError(t, err)
	past := time.Now().Add(-2 * time.Hour)

	expired, err := issuer.Issue(auth.SessionClaims{
		StaffID: "x", Role: staff.RoleCashier, IssuedAt: past, ExpiresAt: past.Add(time.Hour),
	})
	require.NoError(t, err)
	_, err = issuer.Parse(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	other, err := NewJWTTokenIssuer("ffffffffffffffffffffffffffffffff")
	require.NoError(t, err)
	foreign, err := other.Issue(auth.SessionClaims{
		StaffID: "x", Role: staff.RoleCashier, IssuedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	_, err = issuer.Parse(foreign)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestNewJWTTokenIssuer_ShortSecret(t *testing.T) {
	_, err := NewJWTTokenIssuer("short")
	assert.Error(t, err)
}
