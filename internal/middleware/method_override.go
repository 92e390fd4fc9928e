package middleware

import (
	"net/http"
	"strings"
)

// MethodOverrideParam 表单中覆盖请求方法的字段
const MethodOverrideParam = "_method"

var overridableMethods = map[string]bool{
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// MethodOverride 允许 HTML 表单以 POST 提交 PUT/PATCH/DELETE
// 必须包在 gin 引擎外层，路由匹配发生在 gin 中间件之前
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if m := strings.ToUpper(overrideMethod(r)); overridableMethods[m] {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

func overrideMethod(r *http.Request) string {
	if m := r.URL.Query().Get(MethodOverrideParam); m != "" {
		return m
	}
	if m := r.Header.Get("X-HTTP-Method-Override"); m != "" {
		return m
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		return r.PostFormValue(MethodOverrideParam)
	}
	return ""
}
