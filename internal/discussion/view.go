package discussion

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"terminal-terrace/discussion-board/internal/middleware"
)

// View 根据结果渲染页面
type View func(c *gin.Context, result Result)

// 页面模板
const (
	templateNew   = "discussions/new"
	templateIndex = "discussions/index"
	templateShow  = "discussions/show"
	templateEdit  = "discussions/edit"
)

// NewView 新建页
func (h *DiscussionHandler) NewView(c *gin.Context, result Result) {
	h.render(c, templateNew, "new-discussion", "New Discussion", result)
}

// IndexView 列表页
func (h *DiscussionHandler) IndexView(c *gin.Context, result Result) {
	h.render(c, templateIndex, "discussions", "All Discussions", result)
}

// ShowView 详情页
func (h *DiscussionHandler) ShowView(c *gin.Context, result Result) {
	h.render(c, templateShow, "discussion-details", "Discussion Details", result)
}

// EditView 编辑页
func (h *DiscussionHandler) EditView(c *gin.Context, result Result) {
	h.render(c, templateEdit, "edit-discussion", "Edit Discussion", result)
}

// render 页面固定字段优先于结果中的同名数据
func (h *DiscussionHandler) render(c *gin.Context, name, page, title string, result Result) {
	data := result.Data()
	data["page"] = page
	data["title"] = title
	data["basePath"] = h.basePath
	data["categories"] = h.categories
	data["flashes"] = h.flash.Pop(c)
	data["currentUser"] = c.GetString(middleware.ContextUsername)
	c.HTML(http.StatusOK, name, data)
}
