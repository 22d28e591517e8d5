package services

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestCheckPassword_BcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3greto!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	if !checkPassword(string(hash), "s3greto!") {
		t.Error("Expected bcrypt hash to match the original password")
	}
	if checkPassword(string(hash), "wrong") {
		t.Error("Expected bcrypt hash not to match a wrong password")
	}
}

func TestCheckPassword_LegacyPlaintext(t *testing.T) {
	// Rows migrated from the legacy system store the password as-is
	if !checkPassword("s3greto!", "s3greto!") {
		t.Error("Expected legacy plaintext password to match")
	}
	if checkPassword("s3greto!", "wrong") {
		t.Error("Expected legacy plaintext password not to match a wrong one")
	}
}

func TestCheckPassword_EmptyStored(t *testing.T) {
	if checkPassword("", "") {
		t.Error("Expected empty stored password to never match")
	}
	if checkPassword("", "anything") {
		t.Error("Expected empty stored password to never match")
	}
}

func TestHashPassword_ProducesVerifiableHash(t *testing.T) {
	hash, err := hashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	if hash == "password123" {
		t.Error("Expected hash to differ from the plaintext password")
	}
	if !checkPassword(hash, "password123") {
		t.Error("Expected generated hash to verify against the password")
	}
}
