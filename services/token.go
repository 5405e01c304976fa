package services

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/emisero8/backend-reserva-alojamiento-openlodge/config"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/errors"
	"github.com/emisero8/backend-reserva-alojamiento-openlodge/models"
)

// Identity is what a validated token asserts: who is acting and as what.
type Identity struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// Claims is the token payload. Subject carries the normalized email.
type Claims struct {
	Role models.Role `json:"role"`
	jwt.StandardClaims
}

func secretKey() []byte {
	secret := config.GetEnv("SECRET_KEY_ACCESS_TOKEN")
	if secret == "" {
		// development fallback only
		secret = "openlodge-dev-secret"
	}
	return []byte(secret)
}

// GenerateToken issues an HS256 token for the identity, expiring
// expiryMinutes from now. The service keeps no session state: the token
// itself is the session.
func GenerateToken(identity Identity, expiryMinutes int) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: identity.Role,
		StandardClaims: jwt.StandardClaims{
			Subject:   NormalizeEmail(identity.Email),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(time.Minute * time.Duration(expiryMinutes)).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken verifies the signature and expiry and returns the identity
// the token asserts. Expired tokens and invalid ones (bad signature,
// malformed, wrong algorithm) fail with distinct codes.
func ValidateToken(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secretKey(), nil
	})

	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return Identity{}, errors.NewAppError(errors.ErrCodeTokenExpired, "token has expired", err)
		}
		return Identity{}, errors.NewAppError(errors.ErrCodeTokenInvalid, "invalid token", err)
	}

	if !token.Valid || claims.Subject == "" {
		return Identity{}, errors.NewAppError(errors.ErrCodeTokenInvalid, "invalid token", nil)
	}

	return Identity{Email: claims.Subject, Role: claims.Role}, nil
}
