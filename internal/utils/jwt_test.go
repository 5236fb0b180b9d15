package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testClaims = SessionClaims{UserID: "u-123", Login: "ada@example.com", SessionID: "s-1"}

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("test-issuer", testClaims, time.Hour, "secret-key")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Token == nil {
		t.Error("expected non-nil jwt.Token object")
	}
	if token.Subject != "u-123" {
		t.Errorf("expected subject 'u-123', got %s", token.Subject)
	}
	if token.ID != "s-1" {
		t.Errorf("expected jti 's-1', got %s", token.ID)
	}
	if token.Expiry().IsZero() {
		t.Error("expected expiry to be set")
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		claims   SessionClaims
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", testClaims, time.Hour, "key"},
		{"empty subject", "iss", SessionClaims{SessionID: "s"}, time.Hour, "key"},
		{"empty session", "iss", SessionClaims{UserID: "u"}, time.Hour, "key"},
		{"zero duration", "iss", testClaims, 0, "key"},
		{"empty key", "iss", testClaims, time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := GenerateJWTToken(tt.issuer, tt.claims, tt.duration, tt.key); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	token, err := GenerateJWTToken("iss", testClaims, time.Hour, "key")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, parsed, err := ValidateAndParseJWTToken(token.SignedString, "key", "iss")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if claims != testClaims {
		t.Errorf("expected %+v, got %+v", testClaims, claims)
	}
	if parsed.SignedString != token.SignedString {
		t.Error("expected parsed token to keep the signed string")
	}
}

func TestValidateAndParseJWTToken_Failures(t *testing.T) {
	valid, _ := GenerateJWTToken("iss", testClaims, time.Hour, "key")
	expired, _ := GenerateJWTToken("iss", testClaims, time.Nanosecond, "key")
	time.Sleep(1100 * time.Millisecond)

	noneToken := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    "iss",
		Subject:   "u",
		ID:        "s",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	unsigned, _ := noneToken.SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
	}{
		{"wrong key", valid.SignedString, "other", "iss"},
		{"wrong issuer", valid.SignedString, "key", "other"},
		{"expired", expired.SignedString, "key", "iss"},
		{"garbage", "not.a.token", "key", "iss"},
		{"alg none", unsigned, "key", "iss"},
		{"tampered", tamper(valid.SignedString), "key", "iss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ValidateAndParseJWTToken(tt.token, tt.key, tt.issuer); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

// tamper flips the first character of the signature segment.
func tamper(token string) string {
	i := strings.LastIndex(token, ".") + 1
	c := byte('A')
	if token[i] == 'A' {
		c = 'B'
	}
	return token[:i] + string(c) + token[i+1:]
}
