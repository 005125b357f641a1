package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

const AccessTokenCookie = "accessToken"

func SetAuthCookie(c *gin.Context, accessToken string) {
	setCookie(c, AccessTokenCookie, accessToken, AccessTokenExpiry)
}

func setCookie(c *gin.Context, name, value string, expiry time.Duration) {
	secure := true
	if gin.Mode() != gin.ReleaseMode { // plain http in dev and tests
		secure = false
	}
	c.SetCookie(name, value, int(expiry.Seconds()), "/", "", secure, true)
}

func ClearAuthCookie(c *gin.Context) {
	secure := true
	if gin.Mode() != gin.ReleaseMode {
		secure = false
	}
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", secure, true)
}
