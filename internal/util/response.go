package util

import (
	"errors"
	"net/http"

	"studyhub_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}

// StatusFor maps an error onto its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrTokenExpired), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmailRegistered):
		return http.StatusConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrStorageConflict),
		errors.Is(err, ErrEmptyExam), errors.Is(err, ErrAlreadySubscribed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes the error envelope for err. Unclassified errors are
// logged and reported as a generic 500.
func HandleError(c *gin.Context, err error) {
	code := StatusFor(err)
	switch {
	case code == http.StatusInternalServerError:
		LogInternalError(c, err)
	case errors.Is(err, ErrValidation):
		// 校验错误原样返回，便于排查
		Error(c, code, err.Error())
	case errors.Is(err, ErrStorageConflict):
		Error(c, code, ErrStorageConflict.Error())
	case errors.Is(err, ErrTokenExpired):
		Error(c, code, "Token expired")
	case errors.Is(err, ErrUnauthenticated):
		Unauthorized(c)
	case errors.Is(err, ErrForbidden):
		Forbidden(c)
	case errors.Is(err, ErrNotFound):
		NotFound(c)
	default:
		Error(c, code, err.Error())
	}
}
