package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/farellandr/dealhub/internal/deals"
	"github.com/farellandr/dealhub/internal/validator"
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: customMessage,
	})
}

// ServiceErrorStatus maps an error from the deal layer to an HTTP status.
func ServiceErrorStatus(err error) int {
	switch {
	case errors.Is(err, deals.ErrDealNotFound):
		return http.StatusNotFound
	case errors.Is(err, deals.ErrViewer):
		return http.StatusUnauthorized
	case errors.Is(err, validator.ErrInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, deals.ErrStorage):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func RespondWithServiceError(c *gin.Context, err error, customMessage string) {
	status := ServiceErrorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error(customMessage, "path", c.FullPath(), "error", err)
	}
	if status == http.StatusUnprocessableEntity {
		customMessage = err.Error()
	}
	RespondWithError(c, status, customMessage)
}
