package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/utils"
)

func ListNotifications(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notifications, err := services.NewNotificationService(db.DB).List(currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Notifications not found")
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

func ListUnreadNotifications(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notifications, err := services.NewNotificationService(db.DB).ListUnread(currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Notifications not found")
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

func GetUnreadCount(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	count, err := services.NewNotificationService(db.DB).UnreadCount(currentUser)

	if err != nil {
		respondServiceError(ctx, err, "Notifications not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func MarkNotificationRead(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notificationID, err := utils.GetIDParam(ctx, "notification_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.NewNotificationService(db.DB).MarkRead(notificationID, currentUser); err != nil {
		respondServiceError(ctx, err, "Notification not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func MarkAllNotificationsRead(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := services.NewNotificationService(db.DB).MarkAllRead(currentUser); err != nil {
		respondServiceError(ctx, err, "Notifications not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
