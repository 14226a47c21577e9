package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/etsy_atlas/internal/apperrors"
	"github.com/SscSPs/etsy_atlas/internal/middleware"
	"github.com/gin-gonic/gin"
)

// toAppError maps a service error to the response reported for it. The message
// of unexpected errors is never sent to the client.
func toAppError(err error, action string) *apperrors.AppError {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, apperrors.ErrValidation):
		return apperrors.NewBadRequestError(err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		return apperrors.NewNotFoundError("Resource not found")
	case errors.Is(err, apperrors.ErrForbidden):
		return apperrors.NewForbiddenError("Forbidden")
	case errors.Is(err, apperrors.ErrLocked):
		return apperrors.NewConflictError(apperrors.CodeEntryLocked, "Entry is locked and cannot be deleted")
	case errors.Is(err, apperrors.ErrConflict):
		return apperrors.NewConflictError(apperrors.CodeAlreadySeeded, err.Error())
	case errors.Is(err, apperrors.ErrDuplicate):
		return apperrors.NewConflictError(apperrors.CodeDuplicate, "Resource already exists")
	case errors.Is(err, apperrors.ErrProviderUnavailable):
		return apperrors.NewGatewayTimeoutError("Upstream service is unavailable")
	default:
		return apperrors.NewInternalServerError("Failed to " + action)
	}
}

// respondWithError writes the JSON error response for err. Client errors are
// logged as warnings, everything else as errors.
func respondWithError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	appErr := toAppError(err, action)
	if appErr.Code < http.StatusInternalServerError {
		logger.Warn("Rejected "+action+" request", slog.String("error", err.Error()), slog.String("code", appErr.ErrCode))
	} else {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
	}
	c.JSON(appErr.Code, appErr)
}

func badRequest(c *gin.Context, msg string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn(msg, slog.String("error", err.Error()))
	appErr := apperrors.NewBadRequestError(msg + ": " + err.Error())
	c.JSON(appErr.Code, appErr)
}
