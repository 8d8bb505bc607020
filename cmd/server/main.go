// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fasto-go/internal/config"
	"fasto-go/internal/flow"
	"fasto-go/internal/handler"
	"fasto-go/internal/middleware"
	"fasto-go/internal/model"
	"fasto-go/internal/repository"
	"fasto-go/internal/service"
	"fasto-go/pkg/database"
	"fasto-go/pkg/kafka"
	"fasto-go/pkg/llm"
	"fasto-go/pkg/log"
	"fasto-go/pkg/storage"
	"fasto-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库、Redis、对象存储与消息队列
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)
	kafka.InitProducer(cfg.Kafka)

	if err := database.DB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	// 4. 初始化 Repository
	userRepository := repository.NewUserRepository(database.DB)
	contentStore := repository.NewContentStore(database.RDB)

	// 5. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	llmClient := llm.NewClient(cfg.LLM)
	invoker := flow.NewInvoker(llmClient)
	userService := service.NewUserService(userRepository, jwtManager, database.RDB)
	contentService := service.NewContentService(contentStore)
	chatService := service.NewChatService(llmClient, contentStore)

	// 6. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	// 添加我们自定义的日志中间件和 Gin 的 Recovery 中间件
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 7. 注册路由
	apiV1 := r.Group("/api/v1")
	{
		// Auth 路由组
		auth := apiV1.Group("/auth")
		{
			auth.POST("/refreshToken", handler.NewAuthHandler(userService).RefreshToken)
		}

		users := apiV1.Group("/users")
		{
			// 无需认证的路由 (公开访问)
			users.POST("/register", handler.NewUserHandler(userService).Register)
			users.POST("/login", handler.NewUserHandler(userService).Login)

			// 需要认证的路由 (仅限登录用户访问)
			authed := users.Group("/")
			authed.Use(middleware.AuthMiddleware(jwtManager, userService))
			{
				authed.GET("/me", handler.NewUserHandler(userService).GetProfile)
				authed.POST("/logout", handler.NewUserHandler(userService).Logout)
			}
		}

		// Tools 路由组：所有生成工具，需要认证
		toolHandler := handler.NewToolHandler(invoker)
		tools := apiV1.Group("/tools")
		tools.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			tools.POST("/script", toolHandler.GenerateScript)
			tools.POST("/youtube-script", toolHandler.GenerateYoutubeScript)
			tools.POST("/captions", toolHandler.GenerateCaptions)
			tools.POST("/bios", toolHandler.GenerateBios)
			tools.POST("/product-description", toolHandler.GenerateProductDescription)
			tools.POST("/song-lyrics", toolHandler.GenerateSongLyrics)
			tools.POST("/newsletter", toolHandler.GenerateNewsletter)
			tools.POST("/podcast-script", toolHandler.GeneratePodcastScript)
			tools.POST("/blog-post", toolHandler.GenerateBlogPost)
			tools.POST("/voiceover-script", toolHandler.GenerateVoiceoverScript)
			tools.POST("/image-to-text", toolHandler.ImageToText)
		}

		// Saved 路由组：保存内容，需要认证
		savedHandler := handler.NewSavedHandler(contentService)
		saved := apiV1.Group("/saved")
		saved.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			saved.GET("", savedHandler.List)
			saved.POST("", savedHandler.Save)
			saved.DELETE("/:id", savedHandler.Delete)
			saved.DELETE("", savedHandler.Clear)
		}

		// History 路由组：聊天历史投影，需要认证
		historyHandler := handler.NewHistoryHandler(contentService)
		history := apiV1.Group("/history")
		history.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			history.GET("", historyHandler.List)
			history.DELETE("/:id", historyHandler.Delete)
			history.DELETE("", historyHandler.Clear)
		}

		// Attachments 路由组：聊天图片附件，需要认证
		attachments := apiV1.Group("/attachments")
		attachments.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			attachments.POST("", handler.NewAttachmentHandler().Upload)
		}
	}

	// Chat 路由 (WebSocket)，token 经路径参数传入
	r.GET("/chat/:token", handler.NewChatHandler(chatService, userService, jwtManager).Handle)

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
