package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/utils"
)

type TaskRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	DueDate      string `json:"due_date"`
	AssignedToID *uint  `json:"assigned_to_id"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

func taskInput(req TaskRequest) (services.TaskInput, error) {
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return services.TaskInput{}, err
	}

	return services.TaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		Status:       req.Status,
		DueDate:      dueDate,
		AssignedToID: req.AssignedToID,
	}, nil
}

func ListProjectTasks(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, err := services.NewTaskService(db.DB).ListByProject(projectID, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

func GetTask(ctx *gin.Context) {
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

	task, err := services.NewTaskService(db.DB).Get(taskID, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Task not found")
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func CreateTask(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req TaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input, err := taskInput(req)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := services.NewTaskService(db.DB).Create(projectID, input, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	ctx.JSON(http.StatusCreated, task)
}

func UpdateTask(ctx *gin.Context) {
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

	var req TaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input, err := taskInput(req)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := services.NewTaskService(db.DB).Update(taskID, input, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Task not found")
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func UpdateTaskStatus(ctx *gin.Context) {
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

	var req StatusUpdateRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := services.NewTaskService(db.DB).UpdateStatus(taskID, req.Status, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Task not found")
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func DeleteTask(ctx *gin.Context) {
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

	if err := services.NewTaskService(db.DB).Delete(taskID, currentUser); err != nil {
		respondServiceError(ctx, err, "Task not found")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func ListTasksByStatus(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, err := services.NewTaskService(db.DB).ListByStatus(projectID, ctx.Param("status"), currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

func ListTasksByPriority(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, err := services.NewTaskService(db.DB).ListByPriority(projectID, ctx.Param("priority"), currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

func ListTasksAssignedToMe(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tasks, err := services.NewTaskService(db.DB).ListAssignedToMe(currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Tasks not found")
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

func ListOverdueTasks(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tasks, err := services.NewTaskService(db.DB).ListOverdue(currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Tasks not found")
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

func ListTasksDueToday(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tasks, err := services.NewTaskService(db.DB).ListDueToday(currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Tasks not found")
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

func ListHighPriorityTasks(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tasks, err := services.NewTaskService(db.DB).ListHighPriorityIncomplete(currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Tasks not found")
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}
