package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"terminal-terrace/discussion-board/config"
	"terminal-terrace/discussion-board/internal/database"
	"terminal-terrace/discussion-board/internal/logger"
	"terminal-terrace/discussion-board/internal/middleware"
	"terminal-terrace/discussion-board/internal/observability"
	"terminal-terrace/discussion-board/internal/route"
	"terminal-terrace/discussion-board/pkg/authsdk"
)

const shutdownTimeout = 10 * time.Second

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:   "discussion-board",
		Short: "Discussion board web server",
		RunE:  serve,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  serve,
	}

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for local development",
		RunE:  issueToken,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the config file")

	tokenCmd.Flags().Uint("user-id", 1, "user id carried by the token")
	tokenCmd.Flags().String("username", "dev", "username carried by the token")
	tokenCmd.Flags().String("role", "", "role carried by the token")

	rootCmd.AddCommand(serveCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command, _ []string) error {
	// 1. 加载配置
	if err := config.Load(configPath); err != nil {
		return err
	}
	conf := config.Conf
	gin.SetMode(conf.Server.Mode)

	// 2. 初始化日志
	level, err := logger.ParseLevel(conf.Log.Level)
	if err != nil {
		return err
	}
	log, err := logger.Build(conf.Log, level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go watchReload(ctx, log, level)

	// 3. 初始化数据库
	stores, err := database.Init(ctx, conf, log)
	if err != nil {
		log.Error("初始化存储失败", zap.Error(err))
		return err
	}
	defer stores.Close(context.Background())

	var metrics *observability.Collector
	if conf.Metrics.Enabled {
		metrics = observability.NewCollector("discussion_board")
	}

	// 4. 设置路由
	r, err := route.SetupRouter(route.Dependencies{
		Config:     conf,
		Logger:     log,
		Metrics:    metrics,
		FlashStore: stores.FlashStore(time.Duration(conf.Flash.TTL) * time.Second),
		Repository: stores.DiscussionRepository(),
		Health:     stores,
	})
	if err != nil {
		return err
	}

	// 5. 启动服务
	srv := &http.Server{
		Addr:         conf.Server.Addr(),
		Handler:      middleware.MethodOverride(r),
		ReadTimeout:  conf.Server.ReadTimeout,
		WriteTimeout: conf.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("服务启动",
			zap.String("addr", srv.Addr),
			zap.String("driver", conf.Database.Driver),
			zap.String("flash_store", conf.Flash.Store),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("服务异常退出", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("正在关闭服务")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// watchReload 收到 SIGHUP 时重新加载配置
// 日志级别即时生效，其余配置需要重启
func watchReload(ctx context.Context, log *zap.Logger, level zap.AtomicLevel) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := config.Reload(configPath); err != nil {
				log.Error("重新加载配置失败", zap.Error(err))
				continue
			}
			next, err := logger.ParseLevel(config.Conf.Log.Level)
			if err != nil {
				log.Error("重新加载配置失败", zap.Error(err))
				continue
			}
			level.SetLevel(next.Level())
			log.Info("配置已重新加载", zap.String("log_level", next.Level().String()))
		}
	}
}

func issueToken(cmd *cobra.Command, _ []string) error {
	if err := config.Load(configPath); err != nil {
		return err
	}

	userID, _ := cmd.Flags().GetUint("user-id")
	username, _ := cmd.Flags().GetString("username")
	role, _ := cmd.Flags().GetString("role")

	ttl := time.Duration(config.Conf.JWT.ExpireTime) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token, err := authsdk.GenerateToken(authsdk.UserContext{
		UserID:   userID,
		Username: username,
		Role:     role,
	}, config.Conf.JWT.Secret, ttl)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
