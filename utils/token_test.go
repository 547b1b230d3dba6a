package utils

import (
	"strings"
	"testing"
)

func testConfig() *Config {
	return &Config{
		ServerPort: 8080,
		SigningKey: "test-signing-key",
		DBUsername: "test",
		DBPassword: "test",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	controller := NewJWTToken(testConfig())

	token, err := controller.CreateToken(TokenObject{UserID: 7, Role: "user"})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	verified, err := controller.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if verified.UserID != 7 || verified.Role != "user" {
		t.Errorf("verified = %+v, want user 7 role user", verified)
	}
}

func TestVerifyTokenRejectsWrongKey(t *testing.T) {
	controller := NewJWTToken(testConfig())
	token, err := controller.CreateToken(TokenObject{UserID: 7, Role: "user"})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	other := testConfig()
	other.SigningKey = "a-different-key"
	if _, err := NewJWTToken(other).VerifyToken(token); err == nil {
		t.Errorf("expected verification to fail with the wrong key")
	}
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	controller := NewJWTToken(testConfig())
	token, err := controller.CreateToken(TokenObject{UserID: 7, Role: "user"})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + "." + "AAAA"
	if _, err := controller.VerifyToken(tampered); err == nil {
		t.Errorf("expected verification to fail for a tampered signature")
	}
}
