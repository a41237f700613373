// Package tokens is the single token-issuing component shared by the
// vendor, customer and delivery roles. Role and subject go into the
// claims; the signing path is identical for every role.
package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleVendor   = "vendor"
	RoleCustomer = "customer"
	RoleDelivery = "delivery"

	TypeAccess  = "access"
	TypeRefresh = "refresh"

	AccessTTL  = 2 * time.Hour
	RefreshTTL = 30 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type Issuer struct {
	Secret []byte
}

type Pair struct {
	Access     string
	Refresh    string
	AccessExp  time.Time
	RefreshExp time.Time
}

func (i *Issuer) sign(role, subject, tokenType string, exp time.Time) (string, error) {
	claims := Claims{
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.Secret)
}

// IssuePair creates an access/refresh token pair for the given role and
// subject ID. Refresh rotation only: old refresh tokens stay valid until
// they expire on their own.
func (i *Issuer) IssuePair(role, subject string) (*Pair, error) {
	now := time.Now().UTC()
	accessExp := now.Add(AccessTTL)
	refreshExp := now.Add(RefreshTTL)

	access, err := i.sign(role, subject, TypeAccess, accessExp)
	if err != nil {
		return nil, err
	}
	refresh, err := i.sign(role, subject, TypeRefresh, refreshExp)
	if err != nil {
		return nil, err
	}

	return &Pair{
		Access:     access,
		Refresh:    refresh,
		AccessExp:  accessExp,
		RefreshExp: refreshExp,
	}, nil
}

func (i *Issuer) Parse(tokenStr string) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return i.Secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// ParseRefresh validates a refresh token for the expected role and returns
// its subject.
func (i *Issuer) ParseRefresh(tokenStr, role string) (string, error) {
	claims, err := i.Parse(tokenStr)
	if err != nil {
		return "", err
	}
	if claims.TokenType != TypeRefresh || claims.Role != role || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
