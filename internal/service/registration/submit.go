package registration

import (
	"context"
	"time"

	"go.uber.org/zap"

	"photo_registration_server/internal/dto/respond"
	"photo_registration_server/internal/model"
	"photo_registration_server/pkg/errorx"
)

// validationFailedMsg 校验失败时的总提示，逐字段错误放在 data 中
const validationFailedMsg = "Please correct the highlighted fields"

// Submit 提交草稿
//  1. 校验，不通过时返回逐字段错误，不发起任何网络请求
//  2. 原子地置位提交标记；已有提交进行中时为空操作
//  3. 调用提交通道一次（无重试）
//  4. 失败：清除标记、保留全部字段、设置横幅提示
//  5. 成功：草稿替换为只含照片码的确认视图
func (s *registrationService) Submit(ctx context.Context, id string) (*respond.ConfirmationRespond, error) {
	var snapshot model.Registration
	_, err := s.store.Update(ctx, id, func(d *model.Draft) error {
		now := s.now()
		if d.IsSubmitted() {
			return errorx.ErrAlreadySubmitted
		}
		if d.SubmitPending(now, s.staleAfter()) {
			return errorx.ErrSubmitInProgress
		}
		if errs := s.validator.Check(d.Record); !errs.Empty() {
			return errorx.New(errorx.CodeValidationFailed, validationFailedMsg).WithData(errs.Map())
		}
		d.Submitting = true
		d.SubmitStartedAt = now
		d.SubmitError = ""
		d.UpdatedAt = now
		snapshot = d.Record.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 提交一旦开始就不随请求取消，保证草稿状态最终被更新
	bg := context.WithoutCancel(ctx)
	sinkCtx, cancel := context.WithTimeout(bg, s.sinkTimeout)
	defer cancel()

	start := s.now()
	if err := s.sink.Submit(sinkCtx, snapshot.ToSubmission()); err != nil {
		zap.L().Error("提交报名失败",
			zap.String("draft_id", id),
			zap.String("sink", s.sink.Name()),
			zap.Duration("cost", s.now().Sub(start)),
			zap.Error(err),
		)
		if _, uerr := s.store.Update(bg, id, func(d *model.Draft) error {
			d.Submitting = false
			d.SubmitStartedAt = time.Time{}
			d.SubmitError = errorx.ErrSubmitFailed.Msg
			d.UpdatedAt = s.now()
			return nil
		}); uerr != nil {
			zap.L().Error("记录提交失败状态失败", zap.String("draft_id", id), zap.Error(uerr))
		}
		return nil, errorx.Wrap(err, errorx.CodeSubmitFailed, errorx.ErrSubmitFailed.Msg)
	}

	if _, err := s.store.Update(bg, id, func(d *model.Draft) error {
		d.MarkSubmitted(s.now(), snapshot.PhotoCode)
		return nil
	}); err != nil {
		// 外部系统已接受，确认信息仍然返回给用户
		zap.L().Error("更新草稿为已提交失败", zap.String("draft_id", id), zap.Error(err))
	}

	zap.L().Info("报名提交成功",
		zap.String("draft_id", id),
		zap.String("sink", s.sink.Name()),
		zap.String("photo_code", snapshot.PhotoCode),
	)
	return respond.NewConfirmation(id, snapshot.PhotoCode), nil
}
