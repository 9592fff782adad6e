// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"context"

	"photo_registration_server/internal/dto/request"
	"photo_registration_server/internal/dto/respond"
	"photo_registration_server/internal/model"
)

// RegistrationService 报名业务接口
// 处理草稿创建、字段编辑、附加邮箱管理、校验与提交
type RegistrationService interface {
	// CreateDraft 创建空表单（类别默认个人写真，并生成照片码）
	CreateDraft(ctx context.Context) (*respond.DraftRespond, error)
	// GetDraft 获取草稿；已提交的草稿只返回确认信息
	GetDraft(ctx context.Context, id string) (*respond.DraftRespond, error)
	// UpdateFields 部分更新字段，类别变化时重新生成照片码
	UpdateFields(ctx context.Context, id string, req request.UpdateRegistrationRequest) (*respond.DraftRespond, error)
	// AddEmail 追加一个空的附加邮箱
	AddEmail(ctx context.Context, id string) (*respond.DraftRespond, error)
	// SetAdditionalEmail 修改指定位置的附加邮箱
	SetAdditionalEmail(ctx context.Context, id string, index int, value string) (*respond.DraftRespond, error)
	// Validate 校验草稿当前内容
	Validate(ctx context.Context, id string) (*respond.ValidateRespond, error)
	// ValidateRecord 校验客户端提交的完整记录，不涉及草稿
	ValidateRecord(rec model.Registration) *respond.ValidateRespond
	// Submit 提交草稿到外部通道
	Submit(ctx context.Context, id string) (*respond.ConfirmationRespond, error)
	// NewPhotoCode 预览某类别的照片码
	NewPhotoCode(category model.ShootCategory) *respond.PhotoCodeRespond
}
