package token_adapter

import (
	"brokerage-service/internal/core/domain"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidate(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()
	token, err := svc.GenerateToken(ctx, &domain.User{ID: "u-1", Username: "admin"}, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := svc.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "u-1" || claims.Username != "admin" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc, _ := NewTokenService("test-secret")
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	token, err := svc.GenerateToken(context.Background(), &domain.User{ID: "u-1"}, time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	svc.now = func() time.Time { return issued.Add(time.Hour) }
	if _, err := svc.ValidateToken(context.Background(), token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	ours, _ := NewTokenService("ours")
	theirs, _ := NewTokenService("theirs")
	token, _ := theirs.GenerateToken(context.Background(), &domain.User{ID: "x"}, time.Hour)
	if _, err := ours.ValidateToken(context.Background(), token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := ours.ValidateToken(context.Background(), "not-a-jwt"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateRejectsNoneAlgorithm(t *testing.T) {
	svc, _ := NewTokenService("secret")
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "x", "iss": issuer})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := svc.ValidateToken(context.Background(), token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestNewTokenServiceRequiresKey(t *testing.T) {
	if _, err := NewTokenService(""); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
