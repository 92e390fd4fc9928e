package route

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"terminal-terrace/discussion-board/config"
	"terminal-terrace/discussion-board/internal/discussion"
	"terminal-terrace/discussion-board/internal/flash"
	"terminal-terrace/discussion-board/internal/handler"
	"terminal-terrace/discussion-board/internal/middleware"
	"terminal-terrace/discussion-board/internal/observability"
	"terminal-terrace/discussion-board/internal/render"
	"terminal-terrace/discussion-board/internal/service"
)

// Dependencies 路由需要的依赖
type Dependencies struct {
	Config     *config.AppConfig
	Logger     *zap.Logger
	Metrics    *observability.Collector // nil 表示不启用指标
	FlashStore flash.Store
	Repository discussion.DiscussionRepository
	Health     service.Pinger
}

func initRoute(r *gin.Engine, deps Dependencies, flasher *flash.Flasher) {
	conf := deps.Config

	// 初始化依赖
	healthService := service.NewHealthService(deps.Health, conf.Database.Driver)
	discussionService := discussion.NewDiscussionService(deps.Repository, deps.Logger, deps.Metrics)

	// 初始化handler
	healthHandler := handler.NewHealthHandler(healthService)
	discussionHandler := discussion.NewDiscussionHandler(discussionService, flasher, deps.Logger, deps.Metrics,
		discussion.HandlerConfig{
			BasePath:   conf.Discussion.BasePath,
			Categories: conf.Discussion.Categories,
		},
	)

	r.GET("/healthz", healthHandler.HandleHealth)
	if deps.Metrics != nil {
		r.GET(conf.Metrics.Path, gin.WrapH(deps.Metrics.Handler()))
	}
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, conf.Discussion.BasePath)
	})

	discussion.SetupDiscussionRoutes(r, discussionHandler, conf.JWT.Secret)
}

// SetupRouter 构建 gin 引擎
// 返回的引擎需要再包一层 middleware.MethodOverride 才能处理表单提交的 PUT/DELETE
func SetupRouter(deps Dependencies) (*gin.Engine, error) {
	conf := deps.Config
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	r := gin.New()
	if err := render.Setup(r); err != nil {
		return nil, err
	}

	flasher := flash.NewFlasher(deps.FlashStore, conf.Flash.CookieName,
		time.Duration(conf.Flash.TTL)*time.Second, deps.Logger)

	r.Use(
		middleware.Recovery(deps.Logger),
		middleware.RequestID(),
		middleware.AccessLog(deps.Logger),
	)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}

	// 设置跨域请求
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{conf.Server.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	r.Use(
		flasher.Middleware(),
		middleware.ErrorHandler(deps.Logger, discussion.HTTPStatus),
	)

	initRoute(r, deps, flasher)
	return r, nil
}
