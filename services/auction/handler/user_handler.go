package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	model "auction-house/internal/models"
	"auction-house/services/auction/helpers"
	"auction-house/utils"
)

type UserServiceInterface interface {
	Register(ctx context.Context, username, email, password string) (model.User, error)
	Authenticate(ctx context.Context, email, password string) (model.User, error)
}

type UserHandler struct {
	service UserServiceInterface
}

func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// CreateUserHandler handles POST /create-user
func (h *UserHandler) CreateUserHandler(c *gin.Context) {
	var req helpers.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateUserHandler", "Missing required fields", err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Error("CreateUserHandler: failed to create user", map[string]any{
			"email": req.Email,
			"error": err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "User added successfully")
	helpers.LogSuccess("CreateUserHandler", "user created", map[string]any{
		"user_id":  user.ID.Hex(),
		"username": user.Username,
	})
}

// LoginHandler handles POST /login
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", "Missing email or password in request", err)
		return
	}

	user, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Warn("LoginHandler: authentication failed", map[string]any{
			"error": err.Error(),
		})
		return
	}

	if err := helpers.SetSessionUser(c, user.ID.Hex()); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		utils.Error("LoginHandler: failed to save session", map[string]any{
			"user_id": user.ID.Hex(),
			"error":   err.Error(),
		})
		return
	}

	resp := helpers.UserSummary{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Email:    user.Email,
	}

	utils.JSONResponse(c, http.StatusOK, resp, "Login successful")
	helpers.LogSuccess("LoginHandler", "login successful", map[string]any{
		"user_id": user.ID.Hex(),
	})
}

// LogoutHandler handles GET /logout
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	if err := helpers.ClearSessionUser(c); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
		utils.Error("LogoutHandler: failed to clear session", map[string]any{
			"error": err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "Logged out")
}
