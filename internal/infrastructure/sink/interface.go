// Package sink 提供报名数据的外部提交通道
// 各实现（Google Forms、Apps Script、Kafka、本地日志）可互换，由 sinkConfig.mode 选择
package sink

import (
	"context"

	"photo_registration_server/internal/model"
)

// Sink 提交通道接口
// Submit 只尝试一次，不重试、不带幂等键；返回 nil 即表示外部系统已接受
type Sink interface {
	// Name 通道名称，用于日志
	Name() string
	// Submit 提交一条报名数据
	Submit(ctx context.Context, sub model.Submission) error
	// Close 释放底层连接
	Close() error
}
