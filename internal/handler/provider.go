// Package handler 提供 HTTP 请求处理器
// 本文件定义 Handler 聚合结构和构造函数
// 遵循依赖倒置原则，通过构造函数注入 Service 依赖
package handler

import (
	"photo_registration_server/internal/service"
	"photo_registration_server/internal/service/validation"
)

// Handlers 聚合所有 Handler 实例
// 作为依赖注入的入口，Router 层通过此结构访问各个 Handler
type Handlers struct {
	Registration *RegistrationHandler
	Health       *HealthHandler
}

// NewHandlers 创建并注入所有 Handler 实例
// v 用于翻译参数绑定错误，与表单校验使用同一套文案
func NewHandlers(svc *service.Services, v *validation.Validator) *Handlers {
	paramTranslator = v
	return &Handlers{
		Registration: NewRegistrationHandler(svc.Registration),
		Health:       NewHealthHandler(),
	}
}
