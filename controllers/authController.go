package controllers

import (
	"DentalClinic/handlers"
	"DentalClinic/middlewares"
	"DentalClinic/models"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler *handlers.UserHandler
}

func NewAuthController(userHandler *handlers.UserHandler) *AuthController {
	return &AuthController{
		Handler: userHandler,
	}
}

// RegisterRoutes mounts login, the caller's own routes and user administration.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.POST("/auth/login", ac.Handler.Login)

	authGroup := router.Group("/auth").Use(middlewares.TokenAuthMiddleware())
	{
		authGroup.POST("/logoff", ac.Handler.Logoff)
		authGroup.GET("/me", ac.Handler.Me)
	}

	adminGroup := router.Group("/users").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RequireRoles(models.RoleAdmin),
	)
	{
		adminGroup.POST("", ac.Handler.CreateUser)
		adminGroup.GET("", ac.Handler.ListUsers)
		adminGroup.GET("/doctors", ac.Handler.ListDoctors)
		adminGroup.GET("/counts", ac.Handler.CountByRole)
		adminGroup.GET("/:id", ac.Handler.GetUser)
		adminGroup.PATCH("/:id", ac.Handler.UpdateUser)
		adminGroup.DELETE("/:id", ac.Handler.DeleteUser)
	}
}
