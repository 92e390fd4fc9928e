package discussion

import (
	"maps"

	"github.com/gin-gonic/gin"
)

// Result 动作的结果，构造后不可修改
// redirect 非空时转交跳转，否则交给配对的视图渲染 data
type Result struct {
	redirect string
	data     gin.H
}

// RedirectTo 跳转结果，data 随结果保留（例如刚创建的讨论帖）
func RedirectTo(path string, data gin.H) Result {
	return Result{redirect: path, data: maps.Clone(data)}
}

// Render 渲染结果
func Render(data gin.H) Result {
	return Result{data: maps.Clone(data)}
}

// Redirect 跳转目标，空字符串表示不跳转
func (r Result) Redirect() string {
	return r.redirect
}

// Data 返回数据副本
func (r Result) Data() gin.H {
	if r.data == nil {
		return gin.H{}
	}
	return maps.Clone(r.data)
}

// Get 读取单个值
func (r Result) Get(key string) (any, bool) {
	v, ok := r.data[key]
	return v, ok
}
