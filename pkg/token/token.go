// Package token issues and validates the stateless bearer tokens used
// by the API. Tokens are HS256-signed JWTs carrying the subject
// username, the user id and the authority list computed at issuance
// time.
//
// Authority claims are baked in at issuance: revoking a role or
// permission has no effect on tokens already issued until they expire.
// Callers that need immediate revocation can hook a check in front of
// Parse (see middleware.BearerAuthenticator.RevocationChecker).
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stateloan/lms-auth/pkg/model"
)

// DefaultTTL is the token lifetime used when none is configured.
const DefaultTTL = 24 * time.Hour

const issuerName = "lms-auth"

var (
	// ErrTokenExpired is returned by Parse for expired tokens.
	ErrTokenExpired = errors.New("token is expired")
	// ErrTokenInvalid is returned by Parse for any other invalid token.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the JWT payload: subject is the username, UserID the
// database id and Authorities the effective authority list at issuance.
type Claims struct {
	UserID      uint     `json:"uid"`
	Authorities []string `json:"authorities"`
	jwt.RegisteredClaims
}

// Issuer mints and parses signed tokens with a shared HMAC secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer. A zero ttl selects DefaultTTL.
func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue mints a signed token for the user embedding the given
// authorities. The authority list must have been computed fresh from
// the current role/permission graph (authz.EffectiveAuthorities).
func (i *Issuer) Issue(user *model.User, authorities []string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:      user.ID,
		Authorities: authorities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			Issuer:    issuerName,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry of tokenString and returns
// its claims. It does not consult the database: the authorities are
// whatever was embedded at issuance.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Validate reports whether tokenString is a well-signed, unexpired
// token.
func (i *Issuer) Validate(tokenString string) bool {
	_, err := i.Parse(tokenString)
	return err == nil
}

// TTL returns the configured token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}
