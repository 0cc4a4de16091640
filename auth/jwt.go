package auth

import (
	"errors"
	"time"

	"beneficiarydesk/models"

	"github.com/golang-jwt/jwt/v5"
)

const TokenValidity = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims covers the registered claims plus the identity fields embedded in
// every session token. Subject carries the user id.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// GenerateToken mints a signed session token for the given user. The role is
// normalized here, at the mint boundary, so every downstream comparison sees
// the lower-cased form.
func GenerateToken(user *models.AppUser, secret []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Email: user.Email,
		Role:  models.NormalizeRole(user.Role),
	})

	return token.SignedString(secret)
}

// ParseToken verifies signature and expiry and returns the claims. The role
// claim is normalized again on the way out so a token minted elsewhere cannot
// smuggle a differently-cased role past the guard.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims.Role = models.NormalizeRole(claims.Role)
	return claims, nil
}
