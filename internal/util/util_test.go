package util

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := IssueSessionToken("ABC123", "Dr. Smith", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	claims, err := ValidateSessionToken(token, "test-secret")
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.Subject != "ABC123" {
		t.Errorf("subject = %q, want ABC123", claims.Subject)
	}
	if claims.Name != "Dr. Smith" {
		t.Errorf("name = %q, want Dr. Smith", claims.Name)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := IssueSessionToken("ABC123", "", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if _, err := ValidateSessionToken(token, "other-secret"); err == nil {
		t.Fatal("expected validation to fail with the wrong secret")
	}
}

func TestSessionTokenExpired(t *testing.T) {
	token, err := IssueSessionToken("ABC123", "", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if _, err := ValidateSessionToken(token, "test-secret"); err == nil {
		t.Fatal("expected validation to fail for an expired token")
	}
}

func TestValidateGarbageToken(t *testing.T) {
	if _, err := ValidateSessionToken("not-a-token", "test-secret"); err == nil {
		t.Fatal("expected validation to fail for a malformed token")
	}
}
