// Package redis 定义表单草稿存储接口及其实现
// 遵循依赖倒置原则，Service 层依赖 DraftStore 接口，默认使用内存实现，多实例部署时切换为 Redis
package redis

import (
	"context"

	"photo_registration_server/internal/model"
)

// UpdateFunc 在存储的原子读-改-写中执行的修改函数
// 返回错误时放弃本次修改，错误原样返回给调用方
type UpdateFunc func(d *model.Draft) error

// DraftStore 草稿存储接口
type DraftStore interface {
	// Create 保存新草稿，ID 已存在时返回错误
	Create(ctx context.Context, d *model.Draft) error
	// Get 获取草稿副本，不存在或已过期返回 errorx.CodeNotFound
	Get(ctx context.Context, id string) (*model.Draft, error)
	// Update 原子地修改草稿并返回修改后的副本
	Update(ctx context.Context, id string, fn UpdateFunc) (*model.Draft, error)
	// Delete 删除草稿（不存在时不报错）
	Delete(ctx context.Context, id string) error
}
