package handlers

import (
	"DentalClinic/middlewares"
	"DentalClinic/services"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// caller returns the authenticated identity or answers 401.
func caller(c *gin.Context) (middlewares.Identity, bool) {
	identity, ok := middlewares.GetIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, middlewares.Response{Message: "Unauthorized"})
	}
	return identity, ok
}

// bindJSON decodes the body into dst or answers 400.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middlewares.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

// rawBody returns the body of a PATCH for merging onto a stored record.
func rawBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		middlewares.BadRequest(c, "Invalid request body")
		return nil, false
	}
	return body, true
}

func respondList[T any](c *gin.Context, list []T, message, plural string) {
	if len(list) == 0 {
		middlewares.RespondJSON(c, http.StatusOK, services.EmptyListMessage(plural), []T{})
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, message, list)
}

func respondDeleted(c *gin.Context, err error, message string) {
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, message, nil)
}
