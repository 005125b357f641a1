package middlewares

import (
	"DentalClinic/services"
	"DentalClinic/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every JSON answer.
type Response struct {
	Message string      `json:"message"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondJSON writes a successful envelope.
func RespondJSON(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Message: message, Success: true, Data: data})
}

// HttpError maps err to a status code and writes the failure envelope.
// Internal errors are logged and answered with a generic message.
func HttpError(c *gin.Context, err error) {
	status := StatusForKind(services.KindOf(err))
	message := "Internal server error"

	var appErr *services.AppError
	if errors.As(err, &appErr) && status != http.StatusInternalServerError {
		message = appErr.Message
	}
	if status == http.StatusInternalServerError {
		utils.Logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
	}
	c.AbortWithStatusJSON(status, Response{Message: message, Success: false})
}

// BadRequest answers a body that could not be bound.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{Message: message, Success: false})
}

func StatusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
