package guest

import (
	"strings"
	"testing"
	"time"

	"github.com/foodhubhq/storefront-gateway/pkg/config"
)

func testConfig() config.GuestConfig {
	return config.GuestConfig{
		Secret: "test-secret",
		Issuer: "foodhub-gateway",
		TTL:    time.Hour,
	}
}

func TestMintParseRoundTrip(t *testing.T) {
	cfg := testConfig()
	id := NewID()

	token, err := Mint(cfg, time.Now(), id)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	parsed, err := Parse(cfg, token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed != id {
		t.Fatalf("expected guest id %q, got %q", id, parsed)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testConfig()
	token, err := Mint(cfg, time.Now().Add(-2*time.Hour), NewID())
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := Parse(cfg, token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := Mint(testConfig(), time.Now(), NewID())
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	other := testConfig()
	other.Secret = "different"
	if _, err := Parse(other, token); err == nil {
		t.Fatal("expected signature mismatch to be rejected")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	token, err := Mint(testConfig(), time.Now(), NewID())
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	other := testConfig()
	other.Issuer = "someone-else"
	if _, err := Parse(other, token); err == nil {
		t.Fatal("expected issuer mismatch to be rejected")
	}
}

func TestMintValidatesInputs(t *testing.T) {
	cfg := testConfig()
	if _, err := Mint(config.GuestConfig{Issuer: "x", TTL: time.Hour}, time.Now(), "g"); err == nil {
		t.Fatal("expected missing secret to fail")
	}
	if _, err := Mint(cfg, time.Now(), "  "); err == nil {
		t.Fatal("expected blank guest id to fail")
	}
	cfg.TTL = 0
	if _, err := Mint(cfg, time.Now(), "g"); err == nil {
		t.Fatal("expected zero ttl to fail")
	}
}

func TestNewIDHasGuestPrefix(t *testing.T) {
	if id := NewID(); !strings.HasPrefix(id, "guest_") {
		t.Fatalf("unexpected guest id shape %q", id)
	}
}
