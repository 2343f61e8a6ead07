package service

import (
	"errors"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateToken("analyst")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if claims.Subject != "analyst" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
}

func TestJWTExpired(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	svc.ttl = -time.Minute

	token, err := svc.GenerateToken("analyst")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := svc.ParseToken(token); !errors.Is(err, ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", time.Hour).GenerateToken("analyst")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := NewJWTService("secret-b", time.Hour).ParseToken(token); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}

func TestJWTGarbageToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	if _, err := svc.ParseToken("not.a.token"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}
