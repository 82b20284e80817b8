// Package tokens issues and verifies the signed access and refresh tokens.
// Access and refresh tokens use distinct secrets, so a token of one kind can
// never pass verification on the other path.
package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour

	kindAccess  = "access"
	kindRefresh = "refresh"
)

var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("token invalid")
)

type Claims struct {
	Kind string `json:"typ"`
	jwt.RegisteredClaims
}

type Issuer struct {
	AccessSecret  []byte
	RefreshSecret []byte
}

func (i *Issuer) SignAccess(userID string) (string, error) {
	return sign(userID, kindAccess, AccessTTL, i.AccessSecret)
}

func (i *Issuer) SignRefresh(userID string) (string, error) {
	return sign(userID, kindRefresh, RefreshTTL, i.RefreshSecret)
}

func (i *Issuer) ParseAccess(raw string) (string, error) {
	return parse(raw, kindAccess, i.AccessSecret)
}

func (i *Issuer) ParseRefresh(raw string) (string, error) {
	return parse(raw, kindRefresh, i.RefreshSecret)
}

func sign(userID, kind string, ttl time.Duration, secret []byte) (string, error) {
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func parse(raw, kind string, secret []byte) (string, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}
	if !tkn.Valid || claims.Kind != kind || claims.Subject == "" {
		return "", ErrInvalid
	}
	return claims.Subject, nil
}
