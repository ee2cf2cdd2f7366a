package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stayhub/maintenance-be/internal/api/domain"
	"github.com/stayhub/maintenance-be/internal/api/dto"
)

// respondOK writes the standard success envelope.
func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: message, Data: data})
}

// respondError maps business errors to their HTTP status and hides
// infrastructure errors behind a generic 500. Business errors pass
// through with their own message; they are never downgraded.
func respondError(c *gin.Context, logger *slog.Logger, op string, err error) {
	var stateErr *domain.StateError

	switch {
	case errors.Is(err, domain.ErrJobNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		fail(c, http.StatusNotFound, err.Error())

	case errors.Is(err, domain.ErrNotJobOwner),
		errors.Is(err, domain.ErrNotAssignee):
		fail(c, http.StatusForbidden, err.Error())

	case errors.As(err, &stateErr),
		errors.Is(err, domain.ErrStatusConflict),
		errors.Is(err, domain.ErrNoEligibleStaff):
		fail(c, http.StatusBadRequest, err.Error())

	default:
		logger.Error("Unexpected error",
			slog.String("operation", op),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
		fail(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// respondBadRequest reports a malformed request body or parameter.
func respondBadRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, message)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Response{Success: false, Message: message, Data: nil})
}
