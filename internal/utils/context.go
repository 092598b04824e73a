package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (models.User, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return models.User{}, fmt.Errorf("User not authenticated")
	}

	currentUser, ok := user.(models.User)

	if !ok {
		return models.User{}, fmt.Errorf("Invalid user type in context")
	}

	return currentUser, nil
}
