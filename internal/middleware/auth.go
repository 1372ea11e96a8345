package middleware

import (
	"context"
	"strings"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"
	"studyhub_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdentityResolver 将 bearer token 解析为用户
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*model.User, error)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

// Identity 解析请求身份并写入上下文，从不拒绝请求。
// 解析失败时记录错误，由 RequireAuth 或处理函数决定是否当作匿名用户。
func Identity(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolver.ResolveIdentity(c.Request.Context(), bearerToken(c))
		if err != nil {
			c.Set(util.ContextIdentityErrorKey, err)
		} else {
			c.Set(util.ContextUserKey, user)
		}
		c.Next()
	}
}

// RequireAuth 严格模式：无有效身份时按失败原因返回 401/403
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if util.GetUserFromContext(c) != nil {
			c.Next()
			return
		}

		err := util.GetIdentityError(c)
		if err == nil {
			err = util.ErrUnauthenticated
		}
		util.HandleError(c, err)
		c.Abort()
	}
}

func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastSeen(userID uint) error
}

func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := util.GetUserFromContext(c); user != nil {
			// 异步更新，不阻塞主流程
			go func(id uint) {
				if err := repo.UpdateLastSeen(id); err != nil {
					logger.Log.Warn("更新用户活跃时间失败", zap.Uint("userId", id), zap.Error(err))
				}
			}(user.ID)
		}
		c.Next()
	}
}
