package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/utils"
)

type ProjectRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Visibility     string `json:"visibility"`
	DiscordWebhook string `json:"discord_webhook"`
	SlackWebhook   string `json:"slack_webhook"`
}

type AddMemberRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role"`
}

func projectInput(req ProjectRequest) (services.ProjectInput, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return services.ProjectInput{}, err
	}

	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return services.ProjectInput{}, err
	}

	return services.ProjectInput{
		Name:           req.Name,
		Description:    req.Description,
		StartDate:      startDate,
		EndDate:        endDate,
		Visibility:     req.Visibility,
		DiscordWebhook: req.DiscordWebhook,
		SlackWebhook:   req.SlackWebhook,
	}, nil
}

func ListProjects(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projects, err := services.NewProjectService(db.DB).List(currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Projects not found")
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

func GetProject(ctx *gin.Context) {
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

	project, err := services.NewProjectService(db.DB).Get(projectID, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func CreateProject(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req ProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input, err := projectInput(req)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := services.NewProjectService(db.DB).Create(input, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

func UpdateProject(ctx *gin.Context) {
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

	var req ProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	input, err := projectInput(req)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := services.NewProjectService(db.DB).Update(projectID, input, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func DeleteProject(ctx *gin.Context) {
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

	if err := services.NewProjectService(db.DB).Delete(projectID, currentUser); err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func GetProjectProgress(ctx *gin.Context) {
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

	progress, err := services.NewProjectService(db.DB).Progress(projectID, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	ctx.JSON(http.StatusOK, progress)
}

func SearchProjects(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	name := ctx.Query("name")

	projects, err := services.NewProjectService(db.DB).Search(name, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Projects not found")
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

func ListProjectMembers(ctx *gin.Context) {
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

	members, err := services.NewProjectService(db.DB).ListMembers(projectID, currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Project not found")
		return
	}

	ctx.JSON(http.StatusOK, members)
}

func AddProjectMember(ctx *gin.Context) {
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

	var req AddMemberRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := services.NewProjectService(db.DB).AddMember(projectID, req.UserID, req.Role, currentUser); err != nil {
		respondServiceError(ctx, err, "Project or user not found")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Member added successfully"})
}

func RemoveProjectMember(ctx *gin.Context) {
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

	userID, err := utils.GetIDParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.NewProjectService(db.DB).RemoveMember(projectID, userID, currentUser); err != nil {
		respondServiceError(ctx, err, "Member not found")
		return
	}

	ctx.Status(http.StatusNoContent)
}
