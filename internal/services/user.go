package services

import (
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/types"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// List returns every registered user, for assignee and member pickers.
func (s *UserService) List() ([]types.UserResponse, error) {
	var users []models.User
	if err := s.db.Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	responses := make([]types.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, types.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		})
	}

	return responses, nil
}
