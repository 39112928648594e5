package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"resilience_backend/internal/model"
	"resilience_backend/internal/service"
	"resilience_backend/internal/util"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Admin login
// @Description Exchanges admin credentials for a JWT
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "credentials"
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(ctx, 401, "Invalid email or password")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// swagger:model CreateUserRequest
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin editor"`
}

// CreateUser godoc
// @Summary Create a back-office user
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body CreateUserRequest true "user"
// @Success 201 {object} util.Response{data=object}
// @Failure 409 {object} util.Response
// @Router /api/admin/users [post]
func (c *AuthController) CreateUser(ctx *gin.Context) {
	var req CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.UserRole(req.Role),
	}
	if err := c.AuthService.CreateUser(user); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, 409, "Email already registered")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

// Me godoc
// @Summary Current user profile
// @Tags auth
// @Produce  json
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /api/admin/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}
