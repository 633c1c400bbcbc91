package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-contacts/models"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	email := "a@x.com"
	key := "secret-key"

	token, err := GenerateJWTToken(issuer, email, models.ScopeAccessToken, time.Hour, key)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Token == nil {
		t.Error("expected non-nil jwt.Token object")
	}
	if token.Issuer != issuer {
		t.Errorf("expected issuer %s, got %s", issuer, token.Issuer)
	}
	if token.Subject != email {
		t.Errorf("expected subject %s, got %s", email, token.Subject)
	}
	if token.Scope != models.ScopeAccessToken {
		t.Errorf("expected scope %s, got %s", models.ScopeAccessToken, token.Scope)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		email    string
		scope    models.TokenScope
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "a@x.com", models.ScopeAccessToken, time.Hour, "key"},
		{"empty email", "iss", "", models.ScopeAccessToken, time.Hour, "key"},
		{"empty scope", "iss", "a@x.com", "", time.Hour, "key"},
		{"zero duration", "iss", "a@x.com", models.ScopeAccessToken, 0, "key"},
		{"empty key", "iss", "a@x.com", models.ScopeAccessToken, time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.email, tt.scope, tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	genToken, _ := GenerateJWTToken("iss", "b@x.com", models.ScopeRefreshToken, 5*time.Minute, "key")

	parsed, err := ValidateAndParseJWTToken(genToken.SignedString, "key", "iss", models.ScopeRefreshToken)

	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if parsed.Email != "b@x.com" {
		t.Errorf("expected email b@x.com, got %s", parsed.Email)
	}
	if parsed.String() != genToken.SignedString {
		t.Error("expected parsed token to keep its signed string")
	}
}

func TestValidateAndParseJWTToken_WrongScope(t *testing.T) {
	genToken, _ := GenerateJWTToken("iss", "a@x.com", models.ScopeRefreshToken, time.Hour, "key")

	_, err := ValidateAndParseJWTToken(genToken.SignedString, "key", "iss", models.ScopeAccessToken)
	if !errors.Is(err, ErrWrongTokenScope) {
		t.Errorf("expected ErrWrongTokenScope, got %v", err)
	}
}

func TestValidateAndParseJWTToken_InvalidKey(t *testing.T) {
	genToken, _ := GenerateJWTToken("iss", "a@x.com", models.ScopeAccessToken, time.Hour, "correct-key")

	_, err := ValidateAndParseJWTToken(genToken.SignedString, "wrong-key", "iss", models.ScopeAccessToken)
	if err == nil {
		t.Error("expected error due to signature mismatch, got nil")
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	genToken, _ := GenerateJWTToken("iss", "a@x.com", models.ScopeAccessToken, -time.Second, "key")

	_, err := ValidateAndParseJWTToken(genToken.SignedString, "key", "iss", models.ScopeAccessToken)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected jwt.ErrTokenExpired, got %v", err)
	}
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	genToken, _ := GenerateJWTToken("real-issuer", "a@x.com", models.ScopeAccessToken, time.Hour, "key")

	_, err := ValidateAndParseJWTToken(genToken.SignedString, "key", "fake-issuer", models.ScopeAccessToken)
	if err == nil {
		t.Error("expected error for issuer mismatch, got nil")
	}
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseJWTToken("not.a.token", "key", "iss", models.ScopeAccessToken)
	if err == nil {
		t.Error("expected error for malformed token string, got nil")
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc", want: "abc"},
		{header: "bearer abc", want: "abc"},
		{header: "  Bearer   abc  ", want: "abc"},
		{header: "Basic abc", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "", wantErr: true},
		{header: "Bearer a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.header)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
