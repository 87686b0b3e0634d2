package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/service"
)

type AuthHandler struct {
	userService UserServicer
}

func NewAuthHandler(userService UserServicer) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

type UserSignupParams struct {
	Username string `binding:"required,max_bytes=64"          json:"username"`
	Email    string `binding:"required,email,max_bytes=255"  json:"email"`
	Password string `binding:"required,max=255"              json:"password"`
	Role     string `binding:"required,role"                 json:"role"`
}

type AuthResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// Signup POST RouteGroup + SignupRoute. Регистрирует пользователя и аутентифицирует его.
func (h *AuthHandler) Signup(c *gin.Context) {
	var params UserSignupParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, jwtToken, createErr := h.userService.Register(ctx, service.RegisterUserArgs{
		Username: params.Username,
		Email:    params.Email,
		Password: params.Password,
		Role:     domain.RoleType(params.Role),
	})
	if createErr != nil {
		switch {
		case errors.Is(createErr, domain.ErrDuplicateKey):
			abortPublic(c, http.StatusBadRequest, "User already exists")
		case errors.Is(createErr, domain.ErrInvalidRole):
			abortPublic(c, http.StatusUnprocessableEntity, "Invalid role")
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, createErr).
				SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.Header("Authorization", "Bearer "+jwtToken)
	c.JSON(http.StatusOK, AuthResponse{Success: true, User: newUserResponse(user)})
}

type UserLoginParams struct {
	Username string `binding:"required" json:"username"`
	Password string `binding:"required" json:"password"`
}

// Login POST RouteGroup + LoginRoute. Аутентификация по паре логин/пароль.
func (h *AuthHandler) Login(c *gin.Context) {
	var params UserLoginParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		abortWithBindError(c, bindErr)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, token, err := h.userService.Login(ctx, service.LoginUserArgs{
		Username: params.Username,
		Password: params.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			abortPublic(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.Header("Authorization", "Bearer "+token)
	c.JSON(http.StatusOK, AuthResponse{Success: true, User: newUserResponse(user)})
}
