package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/session-booking/pkg/util"
)

// TokenManager issues and validates signed bearer tokens. Tokens are
// stateless: there is no server-side session store and no revocation, the
// validity window bounds the lifetime of a leaked token.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlSeconds int) *TokenManager {
	if ttlSeconds <= 0 {
		ttlSeconds = 86400
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlSeconds) * time.Second}
}

// Claims describes the signed token payload.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken builds and signs a token for the subject user id.
func (tm *TokenManager) GenerateToken(subjectID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
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

// ParseToken validates the signature and expiry and returns the claims.
// Any failure, including a bad signature, a malformed payload or an
// expired token, comes back as an invalid-token fault; no claim inside an
// unverified token is trusted.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, util.NewInvalidToken(err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, util.NewInvalidToken(errors.New("invalid token claims"))
	}
	return claims, nil
}
