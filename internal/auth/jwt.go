// Package auth issues and verifies the session tokens stored for the
// signed-in user.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chrisdutt24/lifeadmin/internal/common"
	"github.com/chrisdutt24/lifeadmin/internal/timex"
)

// Claims are the registered claims plus the signed-in user's id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// Signer issues HS256 session tokens valid for a fixed duration.
type Signer struct {
	secret   []byte
	validity time.Duration
	clock    timex.Clock
}

func NewSigner(secret []byte, validity time.Duration, clock timex.Clock) *Signer {
	if clock == nil {
		clock = timex.SystemClock{}
	}
	return &Signer{secret: secret, validity: validity, clock: clock}
}

// GenerateToken returns a signed token for userID.
func (s *Signer) GenerateToken(userID string) (string, error) {
	now := s.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// UserIDFromToken verifies token and returns its user id. Expired tokens
// yield common.ErrTokenExpired, anything else unusable common.ErrInvalidToken.
func (s *Signer) UserIDFromToken(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", common.ErrTokenExpired
	case err != nil:
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	case !token.Valid || claims.UserID == "":
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
