package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/userhub/user-management-api/internal/core/domain"
)

// AccessClaims is the payload carried inside an access token: a snapshot of
// the user at issuance time. Claims identify the caller; activity and role
// are re-checked against the directory on every protected call.
type AccessClaims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and validates HMAC-signed access tokens. Only HS256 is
// accepted on validation.
type TokenCodec struct {
	secret     []byte
	defaultTTL time.Duration
}

func NewTokenCodec(secret string, defaultTTL time.Duration) *TokenCodec {
	if defaultTTL <= 0 {
		defaultTTL = 30 * time.Minute
	}
	return &TokenCodec{secret: []byte(secret), defaultTTL: defaultTTL}
}

// Issue signs an access token for user expiring after ttl. A ttl <= 0 uses
// the configured default.
func (c *TokenCodec) Issue(user *domain.User, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	now := time.Now().UTC()
	claims := AccessClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Validate verifies signature and expiry and returns the decoded claims.
// Failures surface as exactly one of domain.ErrTokenMalformed,
// domain.ErrTokenSignatureInvalid or domain.ErrTokenExpired. A token that
// parses but lacks a subject or carries an unknown role is malformed.
func (c *TokenCodec) Validate(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenSignatureInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		default:
			return nil, domain.ErrTokenMalformed
		}
	}
	if !token.Valid {
		return nil, domain.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, domain.ErrTokenMalformed
	}
	return claims, nil
}
