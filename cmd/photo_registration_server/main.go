package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photo_registration_server/internal/config"
	myredis "photo_registration_server/internal/dao/redis"
	"photo_registration_server/internal/handler"
	"photo_registration_server/internal/https_server"
	"photo_registration_server/internal/infrastructure/logger"
	"photo_registration_server/internal/infrastructure/sink"
	"photo_registration_server/internal/service"
	"photo_registration_server/internal/service/photocode"
	"photo_registration_server/internal/service/validation"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf, err := config.LoadConfig()
	if err != nil {
		if conf == nil {
			log.Fatalf("load config failed: %v", err)
		}
		log.Printf("load config: %v, using defaults", err)
	}

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer func() { _ = zap.L().Sync() }()
	zap.L().Info("日志初始化成功")

	// 3. 初始化校验器，同时接管 gin 的参数绑定校验
	v, err := validation.New(conf.MainConfig.Locale)
	if err != nil {
		zap.L().Fatal("校验器初始化失败", zap.Error(err))
	}
	v.InstallGinValidator()

	// 4. 初始化草稿存储
	ctx := context.Background()
	store, closeStore, err := myredis.NewDraftStore(ctx, conf)
	if err != nil {
		zap.L().Fatal("草稿存储初始化失败", zap.Error(err))
	}

	// 5. 初始化提交通道
	s, err := sink.New(conf.SinkConfig)
	if err != nil {
		zap.L().Fatal("提交通道初始化失败", zap.Error(err))
	}

	// 6. 初始化 Service 层 (依赖注入)
	svc := service.NewServices(service.Deps{
		Store:       store,
		Codes:       photocode.NewGenerator(nil),
		Validator:   v,
		Sink:        s,
		SinkTimeout: sink.Timeout(conf.SinkConfig),
	})
	zap.L().Info("Service 层初始化成功")

	// 7. 初始化 HTTP 服务器
	engine := https_server.Init(conf, handler.NewHandlers(svc, v))
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zap.L().Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 等待信号
	<-quit
	zap.L().Info("关闭服务器...")

	// 留出时间让进行中的提交完成
	shutdownCtx, cancel := context.WithTimeout(context.Background(), sink.Timeout(conf.SinkConfig)+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("服务器关闭超时", zap.Error(err))
	}

	if err := s.Close(); err != nil {
		zap.L().Error("关闭提交通道失败", zap.Error(err))
	}
	if err := closeStore(); err != nil {
		zap.L().Error("关闭草稿存储失败", zap.Error(err))
	}

	zap.L().Info("服务器已关闭")
}
