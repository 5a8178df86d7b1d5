package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2hunter2" {
		t.Fatalf("hash equals plaintext")
	}
	if !CheckPassword("hunter2hunter2", hash) {
		t.Fatalf("correct password rejected")
	}
	if CheckPassword("wrong", hash) {
		t.Fatalf("wrong password accepted")
	}
}

func TestSignAndParseToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := SignToken(secret, "admin-1", "admin@example.com")
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Subject != "admin-1" {
		t.Fatalf("Subject = %s, want admin-1", claims.Subject)
	}
	if claims.Email != "admin@example.com" {
		t.Fatalf("Email = %s, want admin@example.com", claims.Email)
	}

	if _, err := ParseToken([]byte("other-secret"), token); err == nil {
		t.Fatalf("token accepted with wrong secret")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	secret := []byte("test-secret")

	claims := Claims{
		Email: "admin@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * TokenTTL)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-TokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	if _, err := ParseToken(secret, token); err == nil {
		t.Fatalf("expired token accepted")
	}
}

func TestParseTokenRejectsUnsignedAlg(t *testing.T) {
	secret := []byte("test-secret")

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "admin-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	if _, err := ParseToken(secret, token); err == nil {
		t.Fatalf("alg=none token accepted")
	}
}
