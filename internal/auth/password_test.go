package auth

import (
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Sup3r-Secret!")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if hash == "Sup3r-Secret!" {
		t.Error("Expected hash to differ from the plain password")
	}

	if !VerifyPassword(hash, "Sup3r-Secret!") {
		t.Error("Expected the correct password to verify")
	}

	if VerifyPassword(hash, "wrong-password") {
		t.Error("Expected a wrong password to fail verification")
	}
}
