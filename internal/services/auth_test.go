package services

import (
	"testing"

	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	auth.SetJWTSecret("test-secret")
	database := openTestDB(t)

	service := NewAuthService(database)

	response, err := service.Register("Alice", "  Alice@Example.COM ", "password123")
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if response.Token == "" {
		t.Error("Register() should issue a token")
	}
	if response.Email != "alice@example.com" {
		t.Errorf("email = %s, want normalized alice@example.com", response.Email)
	}
	if response.Role != models.RoleUser {
		t.Errorf("role = %s, want %s", response.Role, models.RoleUser)
	}

	var user models.User
	if err := database.Where("email = ?", "alice@example.com").First(&user).Error; err != nil {
		t.Fatalf("Registered user missing: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")); err != nil {
		t.Error("stored hash does not match the password")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth.SetJWTSecret("test-secret")
	database := openTestDB(t)

	service := NewAuthService(database)

	if _, err := service.Register("Alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	response, err := service.Register("Impostor", "ALICE@example.com", "hunter22222")
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if response.Message != "Email already registered" {
		t.Errorf("message = %q, want %q", response.Message, "Email already registered")
	}
	if response.Token != "" {
		t.Error("duplicate registration must not issue a token")
	}
}

func TestLogin(t *testing.T) {
	auth.SetJWTSecret("test-secret")
	database := openTestDB(t)

	service := NewAuthService(database)

	if _, err := service.Register("Alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	response, err := service.Login("alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if response.Token == "" {
		t.Error("Login() should issue a token")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	auth.SetJWTSecret("test-secret")
	database := openTestDB(t)

	service := NewAuthService(database)

	if _, err := service.Register("Alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	wrongPassword, err := service.Login("alice@example.com", "wrong")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	unknownEmail, err := service.Login("nobody@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	if wrongPassword.Message != unknownEmail.Message {
		t.Errorf("failure messages differ: %q vs %q", wrongPassword.Message, unknownEmail.Message)
	}
	if wrongPassword.Message != "Invalid email or password" {
		t.Errorf("message = %q, want %q", wrongPassword.Message, "Invalid email or password")
	}
	if wrongPassword.Token != "" || unknownEmail.Token != "" {
		t.Error("failed logins must not issue tokens")
	}
}
