package services

import (
	"errors"
	"strings"

	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// invalidCredentials is the single message for every login failure.
// Unknown email and wrong password are deliberately indistinguishable.
const invalidCredentials = "Invalid email or password"

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Register creates a USER-role account and issues a token. A taken
// email comes back as a message on the response, not an error: the
// error return is reserved for infrastructure failures.
func (s *AuthService) Register(name, email, password string) (types.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error

	if err == nil {
		return types.AuthResponse{Message: "Email already registered"}, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return types.AuthResponse{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return types.AuthResponse{}, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         models.RoleUser,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return types.AuthResponse{}, err
	}

	return s.tokenResponse(user)
}

func (s *AuthService) Login(email, password string) (types.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.AuthResponse{Message: invalidCredentials}, nil
		}
		return types.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.AuthResponse{Message: invalidCredentials}, nil
	}

	return s.tokenResponse(user)
}

func (s *AuthService) tokenResponse(user models.User) (types.AuthResponse, error) {
	token, err := auth.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return types.AuthResponse{}, err
	}

	return types.AuthResponse{
		Token:  token,
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}
