// Package token implements the signed session token: a compact HS256 JWT
// carrying the account identity plus issued-at and expiry timestamps. The
// codec owns the signing secret; no other component parses tokens.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hjhuang/identity-service/internal/apperrors"
)

// Claims is the payload embedded in every issued token.
type Claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Codec issues and verifies tokens with a process-wide symmetric secret.
type Codec struct {
	secret []byte
}

// NewCodec returns a codec signing with the given secret.
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Issue produces a signed token for the identity, valid for ttl from now.
func (c *Codec) Issue(userID int64, username, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify parses and validates a token string, returning the embedded claims.
// Failures are reported as the malformed/signature/expired sentinels.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, apperrors.ErrTokenSignatureInvalid
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, apperrors.ErrTokenMalformed
		default:
			return nil, apperrors.ErrTokenMalformed
		}
	}
	if !tok.Valid {
		return nil, apperrors.ErrTokenSignatureInvalid
	}
	return claims, nil
}
