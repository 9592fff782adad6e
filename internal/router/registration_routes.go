package router

import (
	"github.com/gin-gonic/gin"
)

// registerRegistrationRoutes 注册报名表单相关路由
// 表单是公开的，无需认证
func (rt *Router) registerRegistrationRoutes(r *gin.Engine) {
	h := rt.handlers.Registration

	r.GET("/photo-codes", h.PhotoCode)
	// 无状态校验，不依赖草稿
	r.POST("/registrations/validate", h.ValidateRecord)

	regGroup := r.Group("/registrations")
	{
		regGroup.POST("", h.Create)
		regGroup.GET("/:id", h.Get)
		regGroup.PATCH("/:id", h.Update)
		regGroup.POST("/:id/emails", h.AddEmail)
		regGroup.PUT("/:id/emails/:index", h.SetEmail)
		regGroup.POST("/:id/validate", h.Validate)
		regGroup.POST("/:id/submit", h.Submit)
	}
}
