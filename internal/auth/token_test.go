package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/food-delivery-platform/internal/domain"
	apperrors "github.com/spec-kit/food-delivery-platform/pkg/util/errorutil"
)

const testSecret = "test-signing-secret"

func signClaims(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestGenerateAndVerifyToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 7)

	token, exp, err := tm.GenerateToken("user-1", domain.RoleRestaurantOwner)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	principal, err := tm.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", principal.SubjectID)
	assert.Equal(t, domain.RoleRestaurantOwner, principal.Role)
	assert.WithinDuration(t, time.Now(), principal.IssuedAt, time.Minute)
}

func TestVerifyExpiredToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 7)

	now := time.Now()
	token := signClaims(t, testSecret, &Claims{
		Role: string(domain.RoleCustomer),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	})

	_, err := tm.VerifyToken(token)
	require.Error(t, err)
	assert.Equal(t, "TOKEN_EXPIRED", apperrors.ToDomainError(err).Code)
}

func TestVerifyForgedSignature(t *testing.T) {
	tm := NewTokenManager(testSecret, 7)
	other := NewTokenManager("another-secret", 7)

	token, _, err := other.GenerateToken("user-1", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = tm.VerifyToken(token)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestVerifyExpiredAndForgedIsUnauthorized(t *testing.T) {
	// A forged token must never be reported as merely expired.
	tm := NewTokenManager(testSecret, 7)

	now := time.Now()
	token := signClaims(t, "another-secret", &Claims{
		Role: string(domain.RoleCustomer),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	})

	_, err := tm.VerifyToken(token)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestVerifyMalformedToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 7)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := tm.VerifyToken(raw)
		require.Error(t, err, "token %q", raw)
		assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
	}
}

func TestVerifyUnknownRoleRejected(t *testing.T) {
	tm := NewTokenManager(testSecret, 7)

	now := time.Now()
	token := signClaims(t, testSecret, &Claims{
		Role: "superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})

	_, err := tm.VerifyToken(token)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestSequentialTokensAreDistinct(t *testing.T) {
	tm := NewTokenManager(testSecret, 7)

	first, _, err := tm.GenerateToken("user-1", domain.RoleCustomer)
	require.NoError(t, err)

	// iat has second granularity; cross the boundary.
	time.Sleep(1100 * time.Millisecond)

	second, _, err := tm.GenerateToken("user-1", domain.RoleCustomer)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	p1, err := tm.VerifyToken(first)
	require.NoError(t, err)
	p2, err := tm.VerifyToken(second)
	require.NoError(t, err)
	assert.Equal(t, p1.SubjectID, p2.SubjectID)
	assert.Equal(t, p1.Role, p2.Role)
}
