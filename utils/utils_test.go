package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/kidsenglish/config"
)

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		id, err := GenerateID()
		if err != nil {
			t.Fatalf("GenerateID() error: %v", err)
		}
		if len(id) != IDLength {
			t.Fatalf("GenerateID() length = %d, want %d", len(id), IDLength)
		}
		for _, r := range id {
			if !strings.ContainsRune(IDCharset, r) {
				t.Fatalf("GenerateID() produced invalid char %q in %s", r, id)
			}
		}
		if seen[id] {
			t.Fatalf("GenerateID() produced duplicate %s", id)
		}
		seen[id] = true
	}
}

func TestToken_RoundTrip(t *testing.T) {
	token, err := GenerateToken("abc123def456", "kid@example.com", "kidsenglish", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	claims, err := ValidateToken(token, "secret")
	if err != nil {
		t.Fatalf("ValidateToken() error: %v", err)
	}
	if claims.UserID != "abc123def456" || claims.Subject != "abc123def456" {
		t.Errorf("unexpected subject claims: %+v", claims)
	}
	if claims.Email != "kid@example.com" || claims.Issuer != "kidsenglish" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Error("token must carry a jti")
	}

	if _, err := ValidateToken(token, "other-secret"); err == nil {
		t.Error("ValidateToken() must reject a token signed with another secret")
	}

	expired, _ := GenerateToken("abc123def456", "kid@example.com", "kidsenglish", "secret", -time.Minute)
	if _, err := ValidateToken(expired, "secret"); err == nil {
		t.Error("ValidateToken() must reject an expired token")
	}

	noUser, _ := GenerateToken("", "kid@example.com", "kidsenglish", "secret", time.Hour)
	if _, err := ValidateToken(noUser, "secret"); err == nil {
		t.Error("ValidateToken() must reject a token without user id")
	}
}

func TestPassword_HashAndCheck(t *testing.T) {
	hash, err := HashPassword("abcdef12")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if hash == "abcdef12" {
		t.Fatal("HashPassword() returned plain text")
	}
	if !CheckPassword(hash, "abcdef12") {
		t.Error("CheckPassword() should accept the right password")
	}
	if CheckPassword(hash, "abcdef13") {
		t.Error("CheckPassword() should reject a wrong password")
	}
}

func TestValidatePassword(t *testing.T) {
	strict := config.PasswordConfig{
		MinLength:          8,
		RequireUppercase:   true,
		RequireLowercase:   true,
		RequireDigit:       true,
		RequireSpecialChar: true,
		MinSpecialChars:    1,
	}

	tests := []struct {
		name     string
		password string
		cfg      config.PasswordConfig
		wantMsg  string
	}{
		{"empty", "   ", strict, "Password is required"},
		{"too short", "Ab1!", strict, "at least 8 characters"},
		{"missing everything optional", "aaaaaaaa", strict, "an uppercase letter, a digit, 1 special character(s)"},
		{"valid strict", "Abcdef1!", strict, ""},
		{"lenient policy", "aaaaaaaa", config.PasswordConfig{MinLength: 8}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password, tt.cfg)
			if tt.wantMsg == "" {
				if err != nil {
					t.Errorf("ValidatePassword() unexpected error: %v", err)
				}
				return
			}
			var appErr *goerrorkit.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("Expected AppError, got %T: %v", err, err)
			}
			if appErr.Type != goerrorkit.ValidationError {
				t.Errorf("Expected validation error, got %v", appErr.Type)
			}
			if !strings.Contains(appErr.Error(), tt.wantMsg) {
				t.Errorf("Expected error message to contain '%s', got '%s'", tt.wantMsg, appErr.Error())
			}
		})
	}
}
