package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"exercise-tracker/internal/app"
	"exercise-tracker/internal/transport/http/response"
)

type UserHandler struct {
	userService *app.UserService
}

type CreateUserRequest struct {
	Username string `form:"username" json:"username"`
}

type UserView struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}

func NewUserHandler(userService *app.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, created, err := h.userService.RegisterOrFetch(c.Request.Context(), req.Username)
	if err != nil {
		writeServiceError(c, err, "an error occurred while registering the username")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(c, status, UserView{Username: user.Username, ID: user.ID})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "an error occurred while listing users")
		return
	}

	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, UserView{Username: u.Username, ID: u.ID})
	}
	response.JSON(c, http.StatusOK, views)
}
