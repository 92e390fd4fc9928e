package authsdk

import (
	"net/http"
	"strings"
)

// AccessTokenCookie 浏览器端保存访问令牌的 cookie 名
const AccessTokenCookie = "access_token"

// ExtractToken 从 HTTP 请求中提取 JWT token
// 支持两种方式：
// 1. access_token cookie（浏览器表单提交）
// 2. Authorization header (Bearer token)
func ExtractToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoToken
	}

	// 验证格式: Bearer <token>
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", ErrInvalidToken
	}
	return strings.TrimPrefix(authHeader, "Bearer "), nil
}

// GetUserFromRequest 从请求获取用户信息
// 如果没有 token 或解析失败，返回 nil 和对应错误
func GetUserFromRequest(r *http.Request, secret string) (*UserContext, error) {
	token, err := ExtractToken(r)
	if err != nil {
		return nil, err
	}
	return ParseToken(token, secret)
}
