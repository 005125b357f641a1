package handlers

import (
	"DentalClinic/middlewares"
	"DentalClinic/models"
	"DentalClinic/services"
	"DentalClinic/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Login(c *gin.Context) {
	var in models.LoginInput
	if !bindJSON(c, &in) {
		return
	}
	token, user, err := h.service.Login(c.Request.Context(), in)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	utils.SetAuthCookie(c, token)
	middlewares.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"accessToken": token,
		"user":        user,
	})
}

func (h *UserHandler) Logoff(c *gin.Context) {
	utils.ClearAuthCookie(c)
	middlewares.RespondJSON(c, http.StatusOK, "Logged off", nil)
}

// Me answers the stored profile of the caller.
func (h *UserHandler) Me(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}
	user, err := h.service.GetUser(c.Request.Context(), identity.ID)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "User retrieved successfully", user)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var in models.UserInput
	if !bindJSON(c, &in) {
		return
	}
	user, err := h.service.CreateUser(c.Request.Context(), in)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusCreated, "User created successfully", user)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "User retrieved successfully", user)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.ListDoctors(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *UserHandler) CountByRole(c *gin.Context) {
	counts, err := h.service.CountByRole(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "User counts retrieved successfully", counts)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var patch models.UserPatch
	if !bindJSON(c, &patch) {
		return
	}
	user, err := h.service.UpdateUser(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		middlewares.HttpError(c, err)
		return
	}
	middlewares.RespondJSON(c, http.StatusOK, "User updated successfully", user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	respondDeleted(c, h.service.DeleteUser(c.Request.Context(), c.Param("id")), "User deleted")
}
