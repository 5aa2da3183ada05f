package security

import (
	"strings"
	"testing"
)

func TestGenerateAPIKey(t *testing.T) {
	realKey, keyHash, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey() error: %v", err)
	}

	if !strings.HasPrefix(realKey, "cb_live_") {
		t.Fatalf("key prefix got=%q", realKey[:8])
	}
	if len(keyHash) != 64 {
		t.Fatalf("hash length got=%d want=64", len(keyHash))
	}
	if keyHash != HashKey(realKey) {
		t.Fatal("returned hash does not match HashKey of the real key")
	}

	if !ValidateKey(realKey, keyHash) {
		t.Fatal("generated key should validate against its own hash")
	}
	if ValidateKey(realKey+"x", keyHash) {
		t.Fatal("tampered key must not validate")
	}
}

func TestGenerateAPIKey_Unique(t *testing.T) {
	a, _, err := GenerateAPIKey()
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := GenerateAPIKey()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("two generated keys should never collide")
	}
}
