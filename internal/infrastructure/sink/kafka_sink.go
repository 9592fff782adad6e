package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"photo_registration_server/internal/config"
	"photo_registration_server/internal/model"
	"photo_registration_server/pkg/errorx"
)

// messageWriter kafka.Writer 的最小子集，便于测试替换
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// kafkaSink 将报名数据以 JSON 发布到 Kafka，key 为照片码
// 下游消费者负责写入表格等系统
type kafkaSink struct {
	writer messageWriter
	topic  string
}

// 确保 kafkaSink 实现了 Sink 接口
var _ Sink = (*kafkaSink)(nil)

// NewKafkaSink 创建 Kafka 提交通道
func NewKafkaSink(conf config.KafkaSinkConfig, timeout time.Duration) (Sink, error) {
	if strings.TrimSpace(conf.HostPort) == "" || strings.TrimSpace(conf.Topic) == "" {
		return nil, fmt.Errorf("kafka sink: hostPort and topic are required")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(conf.HostPort),
		Topic:                  conf.Topic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           timeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: false,
	}
	return &kafkaSink{writer: w, topic: conf.Topic}, nil
}

func (s *kafkaSink) Name() string { return "kafka" }

func (s *kafkaSink) Submit(ctx context.Context, sub model.Submission) error {
	value, err := json.Marshal(sub)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeSinkError, "kafka sink: encode submission")
	}
	err = s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(sub.PhotoCode),
		Value: value,
	})
	if err != nil {
		return errorx.Wrapf(err, errorx.CodeSinkError, "kafka sink: write to %s", s.topic)
	}
	zap.L().Info("kafka sink published submission", zap.String("topic", s.topic), zap.String("photo_code", sub.PhotoCode))
	return nil
}

func (s *kafkaSink) Close() error {
	return s.writer.Close()
}
