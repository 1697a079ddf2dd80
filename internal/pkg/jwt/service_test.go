package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewHMACService("access", "refresh", time.Minute, time.Hour)
	userID := uuid.New()

	tok, err := svc.GenerateAccessToken(userID, "alice@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("expected email preserved, got %s", claims.Email)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Fatalf("expected access token type, got %s", claims.TokenType)
	}
	if svc.IsRefreshToken(claims) {
		t.Fatalf("access token must not validate as refresh")
	}
}

func TestRefreshTokenType(t *testing.T) {
	svc := NewHMACService("access", "refresh", time.Minute, time.Hour)

	tok, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !svc.IsRefreshToken(claims) {
		t.Fatalf("expected refresh token type, got %s", claims.TokenType)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewHMACService("access", "refresh", time.Minute, time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	tok, err := svc.GenerateAccessToken(uuid.New(), "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := NewHMACService("access", "refresh", time.Minute, time.Hour)
	other := NewHMACService("different", "secrets", time.Minute, time.Hour)

	tok, err := svc.GenerateAccessToken(uuid.New(), "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := other.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := NewHMACService("access", "refresh", time.Minute, time.Hour)

	if _, err := svc.ValidateToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
