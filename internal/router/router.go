package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/internal/handlers"
	"github.com/taskflow-dev/taskflow/internal/middleware"
	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Push notifications to connected websocket clients
	services.Broadcast = handlers.BroadcastNotification

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		users := api.Group("/users", middleware.AuthMiddleware())
		{
			users.GET("", handlers.ListUsers)
			users.GET("/me/comments", handlers.ListMyComments)
			users.GET("/me/time-entries", handlers.ListMyTimeEntries)
			users.GET("/me/total-hours", handlers.GetMyTotalHours)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/search", handlers.SearchProjects)
			projects.GET("/:project_id", handlers.GetProject)
			projects.PUT("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)
			projects.GET("/:project_id/progress", handlers.GetProjectProgress)

			// Membership endpoints
			projects.GET("/:project_id/members", handlers.ListProjectMembers)
			projects.POST("/:project_id/members", handlers.AddProjectMember)
			projects.DELETE("/:project_id/members/:user_id", handlers.RemoveProjectMember)

			// Milestone endpoints scoped to a project
			projects.POST("/:project_id/milestones", handlers.CreateMilestone)
			projects.GET("/:project_id/milestones", handlers.ListProjectMilestones)
			projects.GET("/:project_id/milestones/overdue", handlers.ListOverdueMilestones)
			projects.GET("/:project_id/milestones/upcoming", handlers.ListUpcomingMilestones)
			projects.GET("/:project_id/milestones/progress", handlers.GetMilestoneProgress)
		}

		tasks := api.Group("/tasks", middleware.AuthMiddleware())
		{
			tasks.GET("/assigned-to-me", handlers.ListTasksAssignedToMe)
			tasks.GET("/overdue", handlers.ListOverdueTasks)
			tasks.GET("/due-today", handlers.ListTasksDueToday)
			tasks.GET("/high-priority", handlers.ListHighPriorityTasks)

			// Project-scoped task collections
			tasks.POST("/project/:project_id", handlers.CreateTask)
			tasks.GET("/project/:project_id", handlers.ListProjectTasks)
			tasks.GET("/project/:project_id/status/:status", handlers.ListTasksByStatus)
			tasks.GET("/project/:project_id/priority/:priority", handlers.ListTasksByPriority)

			tasks.GET("/:task_id", handlers.GetTask)
			tasks.PUT("/:task_id", handlers.UpdateTask)
			tasks.PATCH("/:task_id/status", handlers.UpdateTaskStatus)
			tasks.DELETE("/:task_id", handlers.DeleteTask)

			// Comment endpoints scoped to a task
			tasks.POST("/:task_id/comments", handlers.CreateComment)
			tasks.GET("/:task_id/comments", handlers.ListTaskComments)

			// Time entry endpoints scoped to a task
			tasks.POST("/:task_id/time-entries", handlers.CreateTimeEntry)
			tasks.GET("/:task_id/time-entries", handlers.ListTaskTimeEntries)
			tasks.GET("/:task_id/time-entries/me", handlers.ListMyTaskTimeEntries)
			tasks.GET("/:task_id/time-summary", handlers.GetTaskTimeSummary)
			tasks.GET("/:task_id/time-summary/me", handlers.GetMyTaskTotal)
		}

		milestones := api.Group("/milestones", middleware.AuthMiddleware())
		{
			milestones.GET("/:milestone_id", handlers.GetMilestone)
			milestones.PUT("/:milestone_id", handlers.UpdateMilestone)
			milestones.DELETE("/:milestone_id", handlers.DeleteMilestone)
			milestones.PATCH("/:milestone_id/toggle", handlers.ToggleMilestone)
		}

		comments := api.Group("/comments", middleware.AuthMiddleware())
		{
			comments.GET("/:comment_id", handlers.GetComment)
			comments.PUT("/:comment_id", handlers.UpdateComment)
			comments.DELETE("/:comment_id", handlers.DeleteComment)
		}

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("", handlers.ListNotifications)
			notifications.GET("/unread", handlers.ListUnreadNotifications)
			notifications.GET("/unread-count", handlers.GetUnreadCount)
			notifications.PATCH("/:notification_id/read", handlers.MarkNotificationRead)
			notifications.PATCH("/read-all", handlers.MarkAllNotificationsRead)
		}
	}

	return r
}
