package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/food-delivery-platform/internal/domain"
	apperrors "github.com/spec-kit/food-delivery-platform/pkg/util/errorutil"
)

// TokenManager issues and verifies signed bearer tokens. Verification is
// pure computation over the token and the shared secret, so every service
// behind the gateway runs its own manager with the same secret instead of
// calling out to a central session store.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager. ttlDays falls back to 7 when not
// positive; the expiry is fixed at mint time, there is no sliding window.
func NewTokenManager(secret string, ttlDays int) *TokenManager {
	if ttlDays <= 0 {
		ttlDays = 7
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlDays) * 24 * time.Hour}
}

// Claims describes the JWT payload: subject, role, issued-at and expiry.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken mints and signs a token for the subject with its role.
func (tm *TokenManager) GenerateToken(subjectID string, role domain.Role) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// VerifyToken validates structure, signature and expiry, returning the
// Principal encoded in the token. Failure modes are distinct: an expired
// but genuine token maps to TOKEN_EXPIRED, everything else to UNAUTHORIZED.
// A forged signature is never reported as expired; the signature is checked
// (constant-time, via HMAC comparison inside jwt) before any claim.
func (tm *TokenManager) VerifyToken(tokenStr string) (*Principal, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.NewTokenExpired("token expired")
		}
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, apperrors.NewUnauthorized("invalid token claims")
	}

	// Reject unknown roles here, at the parsing boundary.
	role, roleErr := domain.ParseRole(claims.Role)
	if roleErr != nil {
		return nil, apperrors.NewUnauthorized("unknown role")
	}

	principal := &Principal{
		SubjectID: claims.Subject,
		Role:      role,
	}
	if claims.IssuedAt != nil {
		principal.IssuedAt = claims.IssuedAt.Time
	}
	return principal, nil
}
