package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/services"
)

func ListUsers(ctx *gin.Context) {
	users, err := services.NewUserService(db.DB).List()

	if err != nil {
		respondServiceError(ctx, err, "Users not found")
		return
	}

	ctx.JSON(http.StatusOK, users)
}
