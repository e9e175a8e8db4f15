package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// ErrMissingPrincipal is returned for tokens that carry neither an id nor a subject.
var ErrMissingPrincipal = errors.New("token has no user id")

// MintAccessToken issues a signed JWT. The storefront only mints tokens in
// tests and local tooling; production tokens come from the platform.
func MintAccessToken(cfg config.JWTConfig, now time.Time, ttl time.Duration, payload AccessTokenPayload) (string, error) {
	if !cfg.Verifies() {
		return "", fmt.Errorf("jwt secret is required")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("jwt ttl must be positive")
	}
	if strings.TrimSpace(payload.UserID) == "" {
		return "", ErrMissingPrincipal
	}

	jti := strings.TrimSpace(payload.JTI)
	if jti == "" {
		jti = uuid.NewString()
	}

	claims := AccessTokenClaims{
		UserID: payload.UserID,
		Email:  payload.Email,
		Role:   payload.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   payload.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        jti,
		},
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseAccessToken returns typed claims for tokenString. With a configured
// secret the HS256 signature and issuer are verified; without one the token is
// decoded as-is and only its expiry is checked.
func ParseAccessToken(cfg config.JWTConfig, tokenString string) (*AccessTokenClaims, error) {
	return parseAt(cfg, tokenString, time.Now())
}

func parseAt(cfg config.JWTConfig, tokenString string, now time.Time) (*AccessTokenClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, fmt.Errorf("token is required")
	}

	claims := &AccessTokenClaims{}
	if cfg.Verifies() {
		opts := []jwt.ParserOption{
			jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
			jwt.WithLeeway(cfg.Leeway),
			jwt.WithTimeFunc(func() time.Time { return now }),
		}
		if cfg.Issuer != "" {
			opts = append(opts, jwt.WithIssuer(cfg.Issuer))
		}
		_, err := jwt.ParseWithClaims(
			tokenString,
			claims,
			func(token *jwt.Token) (interface{}, error) {
				if token.Method != jwtSigningMethod {
					return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
				}
				return []byte(cfg.Secret), nil
			},
			opts...,
		)
		if err != nil {
			return nil, err
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return nil, err
		}
		if claims.ExpiresAt != nil && now.After(claims.ExpiresAt.Add(cfg.Leeway)) {
			return nil, fmt.Errorf("%w: expired at %s", jwt.ErrTokenExpired, claims.ExpiresAt.UTC().Format(time.RFC3339))
		}
	}

	if claims.Principal() == "" {
		return nil, ErrMissingPrincipal
	}
	return claims, nil
}
