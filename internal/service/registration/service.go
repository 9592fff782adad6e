// Package registration 提供报名表单的业务逻辑
// 管理草稿生命周期：创建 -> 逐字段编辑 -> 校验 -> 提交到外部通道 -> 替换为确认视图
package registration

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	myredis "photo_registration_server/internal/dao/redis"
	"photo_registration_server/internal/dto/request"
	"photo_registration_server/internal/dto/respond"
	"photo_registration_server/internal/infrastructure/sink"
	"photo_registration_server/internal/model"
	"photo_registration_server/internal/service/photocode"
	"photo_registration_server/internal/service/validation"
	"photo_registration_server/pkg/constants"
	"photo_registration_server/pkg/errorx"
)

// registrationService 报名业务实现
type registrationService struct {
	store       myredis.DraftStore
	codes       *photocode.Generator
	validator   *validation.Validator
	sink        sink.Sink
	sinkTimeout time.Duration

	now   func() time.Time
	newID func() string
}

// NewRegistrationService 构造函数，注入存储、照片码生成器、校验器与提交通道
func NewRegistrationService(
	store myredis.DraftStore,
	codes *photocode.Generator,
	validator *validation.Validator,
	s sink.Sink,
	sinkTimeout time.Duration,
) *registrationService {
	if sinkTimeout <= 0 {
		sinkTimeout = constants.SINK_TIMEOUT_SECONDS * time.Second
	}
	return &registrationService{
		store:       store,
		codes:       codes,
		validator:   validator,
		sink:        s,
		sinkTimeout: sinkTimeout,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// staleAfter 超过该时长的提交标记视为遗留（进程在提交途中退出）
func (s *registrationService) staleAfter() time.Duration {
	return 2 * s.sinkTimeout
}

// CreateDraft 表单加载：创建空记录并生成初始照片码
func (s *registrationService) CreateDraft(ctx context.Context) (*respond.DraftRespond, error) {
	now := s.now()
	rec := model.NewRegistration()
	rec.PhotoCode = s.codes.Generate(rec.ShootCategory)

	d := &model.Draft{
		ID:        s.newID(),
		Status:    model.DraftEditing,
		Record:    rec,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, d); err != nil {
		zap.L().Error("创建草稿失败", zap.Error(err))
		return nil, err
	}
	return s.toRespond(d), nil
}

// GetDraft 获取草稿视图（编辑中或确认页）
func (s *registrationService) GetDraft(ctx context.Context, id string) (*respond.DraftRespond, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toRespond(d), nil
}

// UpdateFields 部分更新字段；类别实际变化时重新生成照片码
func (s *registrationService) UpdateFields(ctx context.Context, id string, req request.UpdateRegistrationRequest) (*respond.DraftRespond, error) {
	d, err := s.edit(ctx, id, func(rec *model.Registration) error {
		if req.FullName != nil {
			rec.FullName = *req.FullName
		}
		if req.Email != nil {
			rec.Email = *req.Email
		}
		if req.PhoneNumber != nil {
			rec.PhoneNumber = *req.PhoneNumber
		}
		if req.Notes != nil {
			rec.Notes = *req.Notes
		}
		if req.ShootCategory != nil && *req.ShootCategory != rec.ShootCategory {
			rec.ShootCategory = *req.ShootCategory
			rec.PhotoCode = s.codes.Generate(rec.ShootCategory)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.toRespond(d), nil
}

// AddEmail 追加一个空的附加邮箱输入框
func (s *registrationService) AddEmail(ctx context.Context, id string) (*respond.DraftRespond, error) {
	d, err := s.edit(ctx, id, func(rec *model.Registration) error {
		if len(rec.AdditionalEmails) >= constants.MAX_ADDITIONAL_EMAILS {
			return errorx.Newf(errorx.CodeInvalidParam, "At most %d additional emails are allowed", constants.MAX_ADDITIONAL_EMAILS)
		}
		rec.AdditionalEmails = append(rec.AdditionalEmails, "")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.toRespond(d), nil
}

// SetAdditionalEmail 修改第 index 个附加邮箱
func (s *registrationService) SetAdditionalEmail(ctx context.Context, id string, index int, value string) (*respond.DraftRespond, error) {
	d, err := s.edit(ctx, id, func(rec *model.Registration) error {
		if index < 0 || index >= len(rec.AdditionalEmails) {
			return errorx.Newf(errorx.CodeInvalidParam, "Additional email index %d out of range", index)
		}
		rec.AdditionalEmails[index] = value
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.toRespond(d), nil
}

// Validate 校验草稿当前记录，不修改任何状态
func (s *registrationService) Validate(ctx context.Context, id string) (*respond.ValidateRespond, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.IsSubmitted() {
		return nil, errorx.ErrAlreadySubmitted
	}
	return s.ValidateRecord(d.Record), nil
}

// ValidateRecord 无状态校验
func (s *registrationService) ValidateRecord(rec model.Registration) *respond.ValidateRespond {
	errs := s.validator.Check(rec)
	return &respond.ValidateRespond{
		Valid:  errs.Empty(),
		Errors: errs.Map(),
	}
}

// NewPhotoCode 预览某个类别的照片码
func (s *registrationService) NewPhotoCode(category model.ShootCategory) *respond.PhotoCodeRespond {
	return &respond.PhotoCodeRespond{
		Category:  string(category),
		PhotoCode: s.codes.Generate(category),
	}
}

// edit 对编辑中的草稿执行修改，已提交的草稿拒绝修改
func (s *registrationService) edit(ctx context.Context, id string, fn func(rec *model.Registration) error) (*model.Draft, error) {
	return s.store.Update(ctx, id, func(d *model.Draft) error {
		if d.IsSubmitted() {
			return errorx.ErrAlreadySubmitted
		}
		if err := fn(&d.Record); err != nil {
			return err
		}
		d.UpdatedAt = s.now()
		return nil
	})
}

func (s *registrationService) toRespond(d *model.Draft) *respond.DraftRespond {
	resp := &respond.DraftRespond{
		ID:          d.ID,
		Status:      d.Status,
		Submitting:  d.SubmitPending(s.now(), s.staleAfter()),
		SubmitError: d.SubmitError,
	}
	if d.IsSubmitted() {
		resp.Confirmation = respond.NewConfirmation(d.ID, d.Record.PhotoCode)
		return resp
	}
	rec := d.Record.Clone()
	resp.Record = &rec
	return resp
}
