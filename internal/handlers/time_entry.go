package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/utils"
)

type TimeEntryRequest struct {
	HoursSpent float64 `json:"hours_spent" binding:"required"`
}

func CreateTimeEntry(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetIDParam(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req TimeEntryRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	entry, err := services.NewTimeEntryService(db.DB).Create(taskID, req.HoursSpent, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Task not found")
		return
	}

	ctx.JSON(http.StatusCreated, entry)
}

func ListTaskTimeEntries(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetIDParam(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := services.NewTimeEntryService(db.DB).ListByTask(taskID, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Task not found")
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

func GetTaskTimeSummary(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetIDParam(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	total, err := services.NewTimeEntryService(db.DB).TaskTotal(taskID, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Task not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"task_id": taskID, "total_hours": total})
}

func ListMyTaskTimeEntries(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetIDParam(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := services.NewTimeEntryService(db.DB).ListByTaskForCurrentUser(taskID, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Task not found")
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

func GetMyTaskTotal(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetIDParam(ctx, "task_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	total, err := services.NewTimeEntryService(db.DB).TaskTotalForCurrentUser(taskID, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Task not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"task_id": taskID, "total_hours": total})
}

func ListMyTimeEntries(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	entries, err := services.NewTimeEntryService(db.DB).ListByCurrentUser(currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Time entries not found")
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

func GetMyTotalHours(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	total, err := services.NewTimeEntryService(db.DB).TotalForCurrentUser(currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Time entries not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user_id": currentUser.ID, "total_hours": total})
}
