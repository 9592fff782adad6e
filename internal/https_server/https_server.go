// Package https_server 提供 HTTP/HTTPS 服务器的初始化和配置
// 负责创建 Gin 引擎实例并配置中间件和路由
package https_server

import (
	"time"

	"photo_registration_server/internal/config"                    // 配置管理
	"photo_registration_server/internal/handler"                   // Handler 聚合对象
	"photo_registration_server/internal/infrastructure/logger"     // 自定义日志中间件
	"photo_registration_server/internal/infrastructure/middleware" // TLS 重定向
	"photo_registration_server/internal/router"                    // 路由注册

	"github.com/gin-contrib/cors" // CORS 跨域中间件
	"github.com/gin-gonic/gin"    // Gin Web 框架
)

// Init 初始化 HTTP 服务器并返回 Gin 引擎实例
// 配置顺序：
//  1. 创建 Gin 引擎（空白，不含默认中间件）
//  2. 注册请求 ID、日志和恢复中间件
//  3. 配置 CORS 跨域规则
//  4. 可选的 TLS 重定向
//  5. 注册业务路由
func Init(conf *config.Config, handlers *handler.Handlers) *gin.Engine {
	if conf.MainConfig.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建空白 Gin 引擎（不使用 gin.Default() 以便完全控制中间件）
	engine := gin.New()

	engine.Use(logger.RequestID())
	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))

	// 配置 CORS 跨域规则，未配置来源时允许所有来源
	corsConfig := cors.DefaultConfig()
	if len(conf.CorsConfig.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = conf.CorsConfig.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", logger.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{logger.RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	engine.Use(cors.New(corsConfig))

	if conf.MainConfig.TLSRedirect {
		engine.Use(middleware.TlsHandler(conf.MainConfig.Host, conf.MainConfig.Port, conf.MainConfig.Mode != "release"))
	}

	// 创建路由管理器并注册所有业务路由
	rt := router.NewRouter(handlers)
	rt.RegisterRoutes(engine)

	return engine
}
