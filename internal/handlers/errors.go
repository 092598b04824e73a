package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/internal/services"
)

// respondServiceError maps the service failure taxonomy onto HTTP
// status codes: collapsed not-found/forbidden to 404, domain-rule and
// validation failures to 400, anything else to 500.
func respondServiceError(ctx *gin.Context, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
	case errors.Is(err, services.ErrDuplicateMember),
		errors.Is(err, services.ErrRemoveCreator),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidVisibility),
		errors.Is(err, services.ErrBlankComment),
		errors.Is(err, services.ErrCommentTooLong),
		errors.Is(err, services.ErrNonPositiveHours):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Unexpected service error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
