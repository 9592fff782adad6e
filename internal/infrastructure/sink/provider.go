package sink

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"photo_registration_server/internal/config"
	"photo_registration_server/pkg/constants"
)

// New 根据 sinkConfig.mode 创建提交通道
func New(conf config.SinkConfig) (Sink, error) {
	timeout := Timeout(conf)
	mode := strings.ToLower(strings.TrimSpace(conf.Mode))

	var (
		s   Sink
		err error
	)
	switch mode {
	case "", "log", "mock":
		s = NewLogSink()
	case "forms":
		s, err = NewFormsSink(conf.Forms, timeout)
	case "script":
		s, err = NewScriptSink(conf.Script, timeout)
	case "kafka":
		s, err = NewKafkaSink(conf.Kafka, timeout)
	default:
		return nil, fmt.Errorf("unknown sink mode %q", conf.Mode)
	}
	if err != nil {
		return nil, err
	}
	zap.L().Info("提交通道初始化成功", zap.String("sink", s.Name()), zap.Duration("timeout", timeout))
	return s, nil
}

// Timeout 单次提交超时，未配置时使用默认值
func Timeout(conf config.SinkConfig) time.Duration {
	if conf.Timeout <= 0 {
		return constants.SINK_TIMEOUT_SECONDS * time.Second
	}
	return time.Duration(conf.Timeout) * time.Second
}
