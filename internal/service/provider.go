// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"time"

	myredis "photo_registration_server/internal/dao/redis"
	"photo_registration_server/internal/infrastructure/sink"
	"photo_registration_server/internal/service/photocode"
	"photo_registration_server/internal/service/registration"
	"photo_registration_server/internal/service/validation"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过此结构访问各个 Service
type Services struct {
	Registration RegistrationService // 报名 Service
}

// Deps Service 层依赖的基础设施
type Deps struct {
	Store       myredis.DraftStore
	Codes       *photocode.Generator
	Validator   *validation.Validator
	Sink        sink.Sink
	SinkTimeout time.Duration
}

// NewServices 创建并注入所有 Service 实例
// 依赖注入流程：
//  1. 接收基础设施依赖（草稿存储、照片码生成器、校验器、提交通道）
//  2. 创建各个 Service 实例
//  3. 返回 Services 聚合
func NewServices(deps Deps) *Services {
	if deps.Codes == nil {
		deps.Codes = photocode.NewGenerator(nil)
	}
	return &Services{
		Registration: registration.NewRegistrationService(
			deps.Store,
			deps.Codes,
			deps.Validator,
			deps.Sink,
			deps.SinkTimeout,
		),
	}
}
