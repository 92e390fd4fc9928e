package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"terminal-terrace/discussion-board/pkg/authsdk"
	"terminal-terrace/discussion-board/pkg/response"
)

// 上下文中的用户信息键
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextEmail    = "email"
	ContextUserRole = "user_role"
)

func setUser(c *gin.Context, user *authsdk.UserContext) {
	c.Set(ContextUserID, user.UserID)
	c.Set(ContextUsername, user.Username)
	c.Set(ContextEmail, user.Email)
	c.Set(ContextUserRole, user.Role)
}

// JWTAuth JWT 认证中间件（必需认证）
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authsdk.GetUserFromRequest(c.Request, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse(response.Unauthorized, err.Error()))
			return
		}

		// 将用户信息存入上下文
		setUser(c, user)
		c.Next()
	}
}

// OptionalJWTAuth 可选的 JWT 认证中间件（不强制要求认证，但如果有token则解析）
func OptionalJWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := authsdk.GetUserFromRequest(c.Request, secret); err == nil {
			setUser(c, user)
		}
		// 无论是否有 token，都继续执行
		c.Next()
	}
}

// CurrentUserID 当前登录用户ID
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
