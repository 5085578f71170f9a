// Package token validates the ZGW-style client JWTs that identify calling
// applications. Tokens are HS256, carry a client_id claim, and age out based
// on their iat rather than an exp claim.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"zaakregister/pkg/domainerrors"
)

// Claims are the claims on a ZGW client token.
type Claims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

// Validator parses and verifies client tokens.
type Validator struct {
	signingKey []byte
	maxAge     time.Duration
	now        func() time.Time
}

func NewValidator(signingKey string, maxAge time.Duration) *Validator {
	return &Validator{
		signingKey: []byte(signingKey),
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Validate parses the token and returns its client_id. An absent or
// unverifiable token yields not_authenticated; a token whose iat is older
// than the configured maximum yields jwt-expired.
func (v *Validator) Validate(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return v.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domainerrors.New(domainerrors.CodeJWTExpired, "token has expired")
		}
		return "", domainerrors.New(domainerrors.CodeNotAuthenticated, "invalid token")
	}
	if !parsed.Valid {
		return "", domainerrors.New(domainerrors.CodeNotAuthenticated, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.ClientID == "" {
		return "", domainerrors.New(domainerrors.CodeNotAuthenticated, "token carries no client_id")
	}
	if claims.IssuedAt == nil {
		return "", domainerrors.New(domainerrors.CodeNotAuthenticated, "token carries no iat")
	}
	if v.maxAge > 0 && v.now().Sub(claims.IssuedAt.Time) > v.maxAge {
		return "", domainerrors.New(domainerrors.CodeJWTExpired, "token iat is too old")
	}
	return claims.ClientID, nil
}

// Sign issues a token for the client. Used by tests and tooling.
func (v *Validator) Sign(clientID string) (string, error) {
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(v.now()),
			Issuer:   clientID,
		},
	})
	return newToken.SignedString(v.signingKey)
}
