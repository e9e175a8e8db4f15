package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "storefront-api"}
	now := time.Now().UTC()

	token, err := MintAccessToken(cfg, now, 30*time.Minute, AccessTokenPayload{
		UserID: "user-42",
		Email:  "ana@example.com",
		Role:   "customer",
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Principal() != "user-42" {
		t.Fatalf("expected principal user-42, got %s", claims.Principal())
	}
	if claims.Email != "ana@example.com" || claims.Role != "customer" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}
	if claims.ID == "" {
		t.Fatal("expected generated jti")
	}

	exp := now.Add(30 * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v", exp, claims.ExpiresAt.UTC())
	}
}

func TestParseAccessTokenInvalidSignature(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "storefront-api"}
	token, err := MintAccessToken(cfg, time.Now(), 10*time.Minute, AccessTokenPayload{UserID: "u1"})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token+"x"); err == nil {
		t.Fatal("expected invalid signature error")
	}
	if _, err := ParseAccessToken(config.JWTConfig{Secret: "other"}, token); err == nil {
		t.Fatal("expected signature mismatch with a different secret")
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "storefront-api"}
	token, err := MintAccessToken(cfg, time.Now().Add(-time.Hour), 15*time.Minute, AccessTokenPayload{UserID: "u1"})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	_, err = ParseAccessToken(cfg, token)
	if err == nil {
		t.Fatal("expected expiration error")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseAccessTokenUnverified(t *testing.T) {
	signer := config.JWTConfig{Secret: "platform-secret", Issuer: "storefront-api"}
	now := time.Now()
	token, err := MintAccessToken(signer, now, 10*time.Minute, AccessTokenPayload{UserID: "u7"})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(config.JWTConfig{}, token)
	if err != nil {
		t.Fatalf("unverified parse failed: %v", err)
	}
	if claims.Principal() != "u7" {
		t.Fatalf("unexpected principal %s", claims.Principal())
	}

	_, err = parseAt(config.JWTConfig{Leeway: time.Minute}, token, now.Add(20*time.Minute))
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if _, err := parseAt(config.JWTConfig{Leeway: time.Minute}, token, now.Add(10*time.Minute+30*time.Second)); err != nil {
		t.Fatalf("leeway should accept a token just past expiry: %v", err)
	}
}

func TestMintAccessTokenRequiresUser(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret"}
	if _, err := MintAccessToken(cfg, time.Now(), time.Minute, AccessTokenPayload{}); !errors.Is(err, ErrMissingPrincipal) {
		t.Fatalf("expected ErrMissingPrincipal, got %v", err)
	}
	if _, err := MintAccessToken(config.JWTConfig{}, time.Now(), time.Minute, AccessTokenPayload{UserID: "u"}); err == nil {
		t.Fatal("expected missing secret error")
	}
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseAccessToken(config.JWTConfig{}, "not-a-jwt"); err == nil {
		t.Fatal("expected malformed token error")
	}
	if _, err := ParseAccessToken(config.JWTConfig{}, "  "); err == nil {
		t.Fatal("expected empty token error")
	}
}
