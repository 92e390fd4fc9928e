package discussion

import (
	"github.com/gin-gonic/gin"

	"terminal-terrace/discussion-board/internal/middleware"
)

// SetupDiscussionRoutes 注册讨论帖路由
// 浏览无需登录；写操作需要登录
func SetupDiscussionRoutes(router gin.IRouter, handler *DiscussionHandler, jwtSecret string) {
	public := router.Group(handler.basePath)
	public.Use(middleware.OptionalJWTAuth(jwtSecret))
	{
		public.GET("", handler.chain("index", handler.Index, handler.IndexView))
		public.GET("/new", handler.chain("new", handler.New, handler.NewView))
		public.GET("/:id", handler.chain("show", handler.Show, handler.ShowView))
		public.GET("/:id/edit", handler.chain("edit", handler.Edit, handler.EditView))
	}

	protected := router.Group(handler.basePath)
	protected.Use(middleware.JWTAuth(jwtSecret))
	{
		protected.POST("", handler.chain("create", handler.Create, nil))
		protected.PUT("/:id", handler.chain("update", handler.Update, nil))
		protected.PATCH("/:id", handler.chain("update", handler.Update, nil))
		protected.DELETE("/:id", handler.chain("delete", handler.Delete, nil))
	}
}
