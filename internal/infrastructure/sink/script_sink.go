package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"photo_registration_server/internal/config"
	"photo_registration_server/internal/model"
	"photo_registration_server/pkg/errorx"
)

// scriptResult Apps Script 的响应体
type scriptResult struct {
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
}

// scriptSink 以 JSON POST 提交到 Google Apps Script Web App
// 响应体 result 字段为 "success" 才视为成功
type scriptSink struct {
	client *resty.Client
	url    string
}

// 确保 scriptSink 实现了 Sink 接口
var _ Sink = (*scriptSink)(nil)

// NewScriptSink 创建 Apps Script 提交通道
func NewScriptSink(conf config.ScriptSinkConfig, timeout time.Duration) (Sink, error) {
	if strings.TrimSpace(conf.URL) == "" {
		return nil, fmt.Errorf("script sink: url is required")
	}
	return &scriptSink{
		client: resty.New().SetTimeout(timeout),
		url:    conf.URL,
	}, nil
}

func (s *scriptSink) Name() string { return "script" }

func (s *scriptSink) Submit(ctx context.Context, sub model.Submission) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(sub).
		Post(s.url)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeSinkError, "script sink request")
	}
	if !resp.IsSuccess() {
		return errorx.Newf(errorx.CodeSinkError, "script sink: unexpected status %d", resp.StatusCode())
	}

	var result scriptResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return errorx.Wrap(err, errorx.CodeSinkError, "script sink: decode response")
	}
	if result.Result != "success" {
		return errorx.Newf(errorx.CodeSinkError, "script sink: result %q %s", result.Result, result.Error)
	}
	zap.L().Info("script sink accepted submission", zap.String("photo_code", sub.PhotoCode))
	return nil
}

func (s *scriptSink) Close() error { return nil }
