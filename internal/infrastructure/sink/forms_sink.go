package sink

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"photo_registration_server/internal/config"
	"photo_registration_server/internal/model"
	"photo_registration_server/pkg/errorx"
)

// formsSink 以查询字符串的形式提交到 Google Forms 的 formResponse 地址
// 字段名映射为每个部署各自的 entry.NNN 标识
type formsSink struct {
	client   *resty.Client
	endpoint string
	entries  config.FormsSinkConfig
}

// 确保 formsSink 实现了 Sink 接口
var _ Sink = (*formsSink)(nil)

// NewFormsSink 创建 Google Forms 提交通道
func NewFormsSink(conf config.FormsSinkConfig, timeout time.Duration) (Sink, error) {
	if strings.TrimSpace(conf.FormID) == "" {
		return nil, fmt.Errorf("forms sink: formID is required")
	}
	base := strings.TrimRight(conf.BaseURL, "/")
	if base == "" {
		base = "https://docs.google.com/forms/d/e"
	}
	return &formsSink{
		client:   resty.New().SetTimeout(timeout),
		endpoint: fmt.Sprintf("%s/%s/formResponse", base, conf.FormID),
		entries:  conf,
	}, nil
}

func (s *formsSink) Name() string { return "forms" }

// params 构造 entry -> 值，未配置的 entry 不提交
func (s *formsSink) params(sub model.Submission) map[string]string {
	pairs := []struct{ entry, value string }{
		{s.entries.NameEntry, sub.FullName},
		{s.entries.EmailEntry, sub.Email},
		{s.entries.CategoryEntry, sub.ShootCategory},
		{s.entries.CodeEntry, sub.PhotoCode},
		{s.entries.AdditionalEmailsEntry, sub.AdditionalEmails},
		{s.entries.PhoneEntry, sub.PhoneNumber},
		{s.entries.NotesEntry, sub.Notes},
	}
	params := make(map[string]string, len(pairs))
	for _, p := range pairs {
		if p.entry == "" {
			continue
		}
		params[p.entry] = p.value
	}
	return params
}

func (s *formsSink) Submit(ctx context.Context, sub model.Submission) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(s.params(sub)).
		Get(s.endpoint)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeSinkError, "forms sink request")
	}
	if !resp.IsSuccess() {
		return errorx.Newf(errorx.CodeSinkError, "forms sink: unexpected status %d", resp.StatusCode())
	}
	zap.L().Info("forms sink accepted submission", zap.String("photo_code", sub.PhotoCode))
	return nil
}

func (s *formsSink) Close() error { return nil }
