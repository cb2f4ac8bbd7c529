package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("admin", "admin@adeonatech.net", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if !parsed.Valid {
		t.Fatal("freshly issued token should validate")
	}

	subject, err := ExtractSubjectFromToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if subject != "admin" {
		t.Fatalf("subject = %q, want admin", subject)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("admin", "admin@adeonatech.net", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expired token should fail validation")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatal("garbage token should fail validation")
	}
}
