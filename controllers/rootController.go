package controllers

import (
	"DentalClinic/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// rootHandler answers a plain health text.
func rootHandler(c *gin.Context) {
	c.Status(http.StatusOK)
	if _, err := c.Writer.Write([]byte("Dental clinic API is running")); err != nil {
		utils.Logger.Error().Err(err).Msg("failed to write root response")
	}
}

func SetupRootRoute(router *gin.Engine) {
	router.GET("/", rootHandler)
}
