package discussion

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"terminal-terrace/discussion-board/internal/middleware"
	"terminal-terrace/discussion-board/internal/observability"
)

// chain 把动作与视图串成一个 gin 处理函数
//
//	出错     -> 交给 ErrorHandler，附带建议跳转地址
//	有跳转   -> 302
//	其余     -> 视图渲染
func (h *DiscussionHandler) chain(name string, action Action, view View) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := action(c)
		if err != nil {
			h.metrics.RecordAction(name, observability.OutcomeFailed)
			_ = c.Error(err).SetMeta(middleware.ErrorMeta{Redirect: result.Redirect()})
			c.Abort()
			return
		}

		if path := result.Redirect(); path != "" {
			h.metrics.RecordAction(name, observability.OutcomeRedirect)
			c.Redirect(http.StatusFound, path)
			return
		}

		// 没有视图也没有跳转，按未匹配处理
		if view == nil {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		h.metrics.RecordAction(name, observability.OutcomeRender)
		view(c, result)
	}
}
