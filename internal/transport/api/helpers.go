package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/transport/api/middlewares"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/transport/api/tokens"
)

// currentUser берет из контекста gin claims текущего юзера. Claims устанавливаются в
// middlewares.OptionalAuth. Если запрос без токена - вернется false.
func currentUser(c *gin.Context) (*tokens.UserClaims, bool) {
	v, exist := c.Get(middlewares.CurrentUserKey)
	if !exist {
		return nil, false
	}
	claims, ok := v.(*tokens.UserClaims)
	return claims, ok
}

// abortWithBindError ошибки валидации отдаются с 422 и текстом валидатора, остальные ошибки разбора тела - 400.
func abortWithBindError(c *gin.Context, bindErr error) {
	var valErrs validator.ValidationErrors
	if errors.As(bindErr, &valErrs) {
		_ = c.AbortWithError(http.StatusUnprocessableEntity, valErrs).SetType(gin.ErrorTypePublic)
		return
	}
	_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
}

func abortPublic(c *gin.Context, status int, msg string) {
	_ = c.AbortWithError(status, errors.New(msg)).SetType(gin.ErrorTypePublic)
}
