package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndVerifyJWT(t *testing.T) {
	SetJWTSecret("test-secret")

	tokenString, err := GenerateJWT(42, "alice@example.com", "USER")
	if err != nil {
		t.Fatalf("GenerateJWT() error: %v", err)
	}

	token, err := VerifyJWT(tokenString)
	if err != nil {
		t.Fatalf("VerifyJWT() error: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	if claims["user_id"] != float64(42) {
		t.Errorf("user_id claim = %v, want 42", claims["user_id"])
	}
	if claims["sub"] != "alice@example.com" {
		t.Errorf("sub claim = %v, want alice@example.com", claims["sub"])
	}
	if claims["role"] != "USER" {
		t.Errorf("role claim = %v, want USER", claims["role"])
	}
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	SetJWTSecret("first-secret")

	tokenString, err := GenerateJWT(1, "alice@example.com", "USER")
	if err != nil {
		t.Fatalf("GenerateJWT() error: %v", err)
	}

	SetJWTSecret("second-secret")

	if _, err := VerifyJWT(tokenString); err == nil {
		t.Error("VerifyJWT() should reject a token signed with a different secret")
	}
}

func TestVerifyJWTRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret")

	if _, err := VerifyJWT("not-a-token"); err == nil {
		t.Error("VerifyJWT() should reject a malformed token")
	}
}
