package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/utils"
)

type MilestoneRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	TargetDate  string `json:"target_date"`
	Completed   bool   `json:"completed"`
}

func milestoneInput(req MilestoneRequest) (services.MilestoneInput, error) {
	targetDate, err := parseDate(req.TargetDate)
	if err != nil {
		return services.MilestoneInput{}, err
	}

	return services.MilestoneInput{
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  targetDate,
		Completed:   req.Completed,
	}, nil
}

func ListProjectMilestones(ctx *gin.Context) {
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

	milestones, err := services.NewMilestoneService(db.DB).ListByProject(projectID, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	ctx.JSON(http.StatusOK, milestones)
}

func GetMilestone(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	milestoneID, err := utils.GetIDParam(ctx, "milestone_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	milestone, err := services.NewMilestoneService(db.DB).Get(milestoneID, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Milestone not found")
		return
	}

	ctx.JSON(http.StatusOK, milestone)
}

func CreateMilestone(ctx *gin.Context) {
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

	var req MilestoneRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input, err := milestoneInput(req)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	milestone, err := services.NewMilestoneService(db.DB).Create(projectID, input, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	ctx.JSON(http.StatusCreated, milestone)
}

func UpdateMilestone(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	milestoneID, err := utils.GetIDParam(ctx, "milestone_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req MilestoneRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input, err := milestoneInput(req)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	milestone, err := services.NewMilestoneService(db.DB).Update(milestoneID, input, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Milestone not found")
		return
	}

	ctx.JSON(http.StatusOK, milestone)
}

func DeleteMilestone(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	milestoneID, err := utils.GetIDParam(ctx, "milestone_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.NewMilestoneService(db.DB).Delete(milestoneID, currentUser); err != nil {
		respondServiceError(ctx, err, "Milestone not found")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func ToggleMilestone(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	milestoneID, err := utils.GetIDParam(ctx, "milestone_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	milestone, err := services.NewMilestoneService(db.DB).ToggleCompletion(milestoneID, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Milestone not found")
		return
	}

	ctx.JSON(http.StatusOK, milestone)
}

func ListOverdueMilestones(ctx *gin.Context) {
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

	milestones, err := services.NewMilestoneService(db.DB).ListOverdue(projectID, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	ctx.JSON(http.StatusOK, milestones)
}

func ListUpcomingMilestones(ctx *gin.Context) {
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

	milestones, err := services.NewMilestoneService(db.DB).ListUpcoming(projectID, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	ctx.JSON(http.StatusOK, milestones)
}

func GetMilestoneProgress(ctx *gin.Context) {
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

	progress, err := services.NewMilestoneService(db.DB).Progress(projectID, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	ctx.JSON(http.StatusOK, progress)
}
