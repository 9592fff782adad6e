package sink

import (
	"context"

	"go.uber.org/zap"

	"photo_registration_server/internal/model"
)

// logSink 本地 mock 通道，只写日志
// 没有配置真实通道时使用，便于本机跑通完整的提交链路
type logSink struct{}

// NewLogSink 创建本地日志通道
func NewLogSink() Sink {
	return logSink{}
}

func (logSink) Name() string { return "log" }

func (logSink) Submit(_ context.Context, sub model.Submission) error {
	// 姓名、邮箱等个人信息不写入日志文件
	zap.L().Info("【MockSink】收到报名",
		zap.String("category", sub.ShootCategory),
		zap.String("photo_code", sub.PhotoCode),
	)
	return nil
}

func (logSink) Close() error { return nil }
