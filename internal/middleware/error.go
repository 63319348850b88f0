package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

// Client-facing messages. Internal detail never leaves the server.
const (
	MsgInternal           = "An error occurred while processing your request"
	MsgUnauthenticated    = "Authentication required"
	MsgInvalidCredentials = "Invalid email or secret"
	MsgNotFound           = "Recipe not found"
	MsgValidation         = "Validation failed"
	MsgMalformedBody      = "Malformed request body"
	MsgBodyTooLarge       = "Request body too large"
	MsgRouteNotFound      = "The route you requested is not found"
)

// ErrorHandler renders the last error attached with c.Error as a JSON
// response, unless the handler already wrote one.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		status, body := describe(last)
		if status >= http.StatusInternalServerError {
			slog.Error("request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"error", last.Err,
			)
			if hub := sentrygin.GetHubFromContext(c); hub != nil {
				hub.CaptureException(last.Err)
			}
		}
		c.AbortWithStatusJSON(status, body)
	}
}

func describe(ginErr *gin.Error) (int, types.ErrorResponse) {
	err := ginErr.Err

	var verr *service.ValidationError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &verr):
		fields := make([]types.FieldIssue, len(verr.Fields))
		for i, f := range verr.Fields {
			fields[i] = types.FieldIssue{Field: f.Field, Message: f.Message}
		}
		return http.StatusBadRequest, types.ErrorResponse{Error: MsgValidation, Fields: fields}
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, types.ErrorResponse{Error: MsgBodyTooLarge}
	case ginErr.IsType(gin.ErrorTypeBind):
		return http.StatusBadRequest, types.ErrorResponse{Error: MsgMalformedBody}
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, types.ErrorResponse{Error: MsgUnauthenticated}
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, types.ErrorResponse{Error: MsgInvalidCredentials}
	case errors.Is(err, service.ErrRecipeNotFound):
		return http.StatusNotFound, types.ErrorResponse{Error: MsgNotFound}
	default:
		return http.StatusInternalServerError, types.ErrorResponse{Error: MsgInternal}
	}
}

// NotFound answers unknown routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, types.ErrorResponse{Error: MsgRouteNotFound})
}
