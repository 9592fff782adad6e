package registration

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	myredis "photo_registration_server/internal/dao/redis"
	"photo_registration_server/internal/dto/request"
	"photo_registration_server/internal/dto/respond"
	"photo_registration_server/internal/model"
	"photo_registration_server/internal/service/photocode"
	"photo_registration_server/internal/service/validation"
	"photo_registration_server/pkg/errorx"
	"photo_registration_server/pkg/util/random"
)

// fakeSink 记录调用次数，可配置为阻塞或失败
type fakeSink struct {
	calls  atomic.Int32
	mu     sync.Mutex
	last   model.Submission
	ctxErr error

	err     error
	entered chan struct{}
	release chan struct{}
}

func (f *fakeSink) Name() string { return "fake" }

func (f *fakeSink) Submit(ctx context.Context, sub model.Submission) error {
	f.calls.Add(1)
	f.mu.Lock()
	f.last = sub
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	f.ctxErr = ctx.Err()
	f.mu.Unlock()
	return f.err
}

func (f *fakeSink) Close() error { return nil }

func (f *fakeSink) lastSubmission() model.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func newTestService(t *testing.T, s *fakeSink) (*registrationService, *myredis.MemoryDraftStore) {
	t.Helper()
	v, err := validation.New("en")
	require.NoError(t, err)
	store := myredis.NewMemoryDraftStore(time.Hour)
	codes := photocode.NewGenerator(random.NewSeededSource(7))
	return NewRegistrationService(store, codes, v, s, time.Second), store
}

func strPtr(s string) *string { return &s }

func categoryPtr(c model.ShootCategory) *model.ShootCategory { return &c }

// fillValid 填写可以提交的最小记录
func fillValid(t *testing.T, svc *registrationService, id string) *respond.DraftRespond {
	t.Helper()
	d, err := svc.UpdateFields(context.Background(), id, request.UpdateRegistrationRequest{
		FullName: strPtr("Ada Lovelace"),
		Email:    strPtr("ada@example.com"),
	})
	require.NoError(t, err)
	return d
}

func TestCreateDraftDefaults(t *testing.T) {
	svc, _ := newTestService(t, &fakeSink{})

	d, err := svc.CreateDraft(context.Background())
	require.NoError(t, err)

	require.NotNil(t, d.Record)
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, model.DraftEditing, d.Status)
	assert.Equal(t, model.CategoryIndividual, d.Record.ShootCategory)
	assert.Equal(t, []string{""}, d.Record.AdditionalEmails)
	assert.True(t, strings.HasPrefix(d.Record.PhotoCode, "WS-I-"))
	assert.True(t, photocode.Valid(d.Record.PhotoCode))
	assert.Nil(t, d.Confirmation)
}

func TestGetDraftNotFound(t *testing.T) {
	svc, _ := newTestService(t, &fakeSink{})

	_, err := svc.GetDraft(context.Background(), "missing")
	assert.True(t, errorx.IsNotFound(err))
}

func TestUpdateFieldsRegeneratesCodeOnCategoryChange(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, &fakeSink{})
	d, err := svc.CreateDraft(ctx)
	require.NoError(t, err)
	first := d.Record.PhotoCode

	// 类别不变：照片码保持不变
	d, err = svc.UpdateFields(ctx, d.ID, request.UpdateRegistrationRequest{
		ShootCategory: categoryPtr(model.CategoryIndividual),
		Notes:         strPtr("outdoor"),
	})
	require.NoError(t, err)
	assert.Equal(t, first, d.Record.PhotoCode)
	assert.Equal(t, "outdoor", d.Record.Notes)

	d, err = svc.UpdateFields(ctx, d.ID, request.UpdateRegistrationRequest{
		ShootCategory: categoryPtr(model.CategoryGroup),
	})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryGroup, d.Record.ShootCategory)
	assert.True(t, strings.HasPrefix(d.Record.PhotoCode, "WS-G-"))

	d, err = svc.UpdateFields(ctx, d.ID, request.UpdateRegistrationRequest{
		ShootCategory: categoryPtr(model.CategoryIndividual),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(d.Record.PhotoCode, "WS-I-"))
}

func TestUpdateFieldsKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, &fakeSink{})
	d, err := svc.CreateDraft(ctx)
	require.NoError(t, err)
	fillValid(t, svc, d.ID)

	d, err = svc.UpdateFields(ctx, d.ID, request.UpdateRegistrationRequest{PhoneNumber: strPtr("555-0100")})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", d.Record.FullName)
	assert.Equal(t, "ada@example.com", d.Record.Email)
	assert.Equal(t, "555-0100", d.Record.PhoneNumber)
}

func TestAdditionalEmails(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, &fakeSink{})
	d, err := svc.CreateDraft(ctx)
	require.NoError(t, err)

	d, err = svc.AddEmail(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"", ""}, d.Record.AdditionalEmails)

	d, err = svc.SetAdditionalEmail(ctx, d.ID, 1, "b@x.io")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "b@x.io"}, d.Record.AdditionalEmails)

	_, err = svc.SetAdditionalEmail(ctx, d.ID, 2, "c@x.io")
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
	_, err = svc.SetAdditionalEmail(ctx, d.ID, -1, "c@x.io")
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	// 越界修改不影响已有内容
	got, err := svc.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "b@x.io"}, got.Record.AdditionalEmails)
}

func TestAddEmailLimit(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, &fakeSink{})
	d, err := svc.CreateDraft(ctx)
	require.NoError(t, err)

	for {
		_, err = svc.AddEmail(ctx, d.ID)
		if err != nil {
			break
		}
	}
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, &fakeSink{})
	d, err := svc.CreateDraft(ctx)
	require.NoError(t, err)

	res, err := svc.Validate(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, map[string]string{
		"fullName": "Full name is required",
		"email":    "Email is required",
	}, res.Errors)

	_, err = svc.UpdateFields(ctx, d.ID, request.UpdateRegistrationRequest{
		FullName: strPtr("Ada"),
		Email:    strPtr("not-an-email"),
	})
	require.NoError(t, err)
	res, err = svc.Validate(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"email": "Please enter a valid email"}, res.Errors)
}

func TestValidateRecordIsStateless(t *testing.T) {
	svc, store := newTestService(t, &fakeSink{})

	res := svc.ValidateRecord(model.Registration{FullName: "  ", Email: "a@b.c"})
	assert.False(t, res.Valid)
	assert.Equal(t, map[string]string{"fullName": "Full name is required"}, res.Errors)
	assert.Zero(t, store.Len())
}

func TestSubmitValidationFailureSkipsSink(t *testing.T) {
	ctx := context.Background()
	s := &fakeSink{}
	svc, _ := newTestService(t, s)
	d, err := svc.CreateDraft(ctx)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, d.ID)
	require.Error(t, err)

	var codeErr *errorx.CodeError
	require.True(t, errors.As(err, &codeErr))
	assert.Equal(t, errorx.CodeValidationFailed, codeErr.Code)
	assert.Equal(t, map[string]string{
		"fullName": "Full name is required",
		"email":    "Email is required",
	}, codeErr.Data)
	assert.Zero(t, s.calls.Load())

	got, err := svc.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, got.Submitting)
}

func TestSubmitSuccess(t *testing.T) {
	ctx := context.Background()
	s := &fakeSink{}
	svc, _ := newTestService(t, s)
	d, err := svc.CreateDraft(ctx)
	require.NoError(t, err)
	fillValid(t, svc, d.ID)
	_, err = svc.AddEmail(ctx, d.ID)
	require.NoError(t, err)
	_, err = svc.AddEmail(ctx, d.ID)
	require.NoError(t, err)
	_, err = svc.SetAdditionalEmail(ctx, d.ID, 0, "a@x.io")
	require.NoError(t, err)
	_, err = svc.SetAdditionalEmail(ctx, d.ID, 2, "b@x.io")
	require.NoError(t, err)

	before, err := svc.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	code := before.Record.PhotoCode

	conf, err := svc.Submit(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, code, conf.PhotoCode)
	assert.Equal(t, respond.ConfirmationMessage, conf.Message)
	assert.Equal(t, respond.ConfirmationHint, conf.Hint)

	assert.EqualValues(t, 1, s.calls.Load())
	sub := s.lastSubmission()
	assert.Equal(t, "Ada Lovelace", sub.FullName)
	assert.Equal(t, "ada@example.com", sub.Email)
	assert.Equal(t, string(model.CategoryIndividual), sub.ShootCategory)
	assert.Equal(t, code, sub.PhotoCode)
	assert.Equal(t, "a@x.io, b@x.io", sub.AdditionalEmails)

	// 提交后只剩确认视图
	after, err := svc.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DraftSubmitted, after.Status)
	assert.Nil(t, after.Record)
	require.NotNil(t, after.Confirmation)
	assert.Equal(t, code, after.Confirmation.PhotoCode)

	_, err = svc.UpdateFields(ctx, d.ID, request.UpdateRegistrationRequest{FullName: strPtr("Other")})
	assert.ErrorIs(t, err, errorx.ErrAlreadySubmitted)
	_, err = svc.Submit(ctx, d.ID)
	assert.ErrorIs(t, err, errorx.ErrAlreadySubmitted)
	_, err = svc.Validate(ctx, d.ID)
	assert.ErrorIs(t, err, errorx.ErrAlreadySubmitted)
	assert.EqualValues(t, 1, s.calls.Load())
}

func TestSubmitFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	s := &fakeSink{err: errors.New("connection refused")}
	svc, _ := newTestService(t, s)
	d, err := svc.CreateDraft(ctx)
	require.NoError(t, err)
	before := fillValid(t, svc, d.ID)

	_, err = svc.Submit(ctx, d.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, errorx.ErrSubmitFailed)
	assert.EqualValues(t, 1, s.calls.Load())

	after, err := svc.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DraftEditing, after.Status)
	assert.False(t, after.Submitting)
	assert.Equal(t, errorx.ErrSubmitFailed.Msg, after.SubmitError)
	assert.Equal(t, before.Record, after.Record)

	// 失败后允许重新提交，成功后横幅消失
	s.err = nil
	_, err = svc.Submit(ctx, d.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, s.calls.Load())
	done, err := svc.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, done.SubmitError)
}

func TestSubmitWhilePendingIsNoop(t *testing.T) {
	ctx := context.Background()
	s := &fakeSink{entered: make(chan struct{}, 1), release: make(chan struct{})}
	svc, _ := newTestService(t, s)
	d, err := svc.CreateDraft(ctx)
	require.NoError(t, err)
	fillValid(t, svc, d.ID)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = svc.Submit(ctx, d.ID)
	}()

	<-s.entered
	pending, err := svc.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, pending.Submitting)

	_, err = svc.Submit(ctx, d.ID)
	assert.ErrorIs(t, err, errorx.ErrSubmitInProgress)

	close(s.release)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.EqualValues(t, 1, s.calls.Load())
}

func TestCategoryChangeWhilePendingKeepsSubmittedCode(t *testing.T) {
	ctx := context.Background()
	s := &fakeSink{entered: make(chan struct{}, 1), release: make(chan struct{})}
	svc, _ := newTestService(t, s)
	d, err := svc.CreateDraft(ctx)
	require.NoError(t, err)
	fillValid(t, svc, d.ID)

	done := make(chan *respond.ConfirmationRespond, 1)
	go func() {
		conf, err := svc.Submit(ctx, d.ID)
		assert.NoError(t, err)
		done <- conf
	}()

	<-s.entered
	edited, err := svc.UpdateFields(ctx, d.ID, request.UpdateRegistrationRequest{
		ShootCategory: categoryPtr(model.CategoryGroup),
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(edited.Record.PhotoCode, "WS-G-"))

	close(s.release)
	conf := <-done
	require.NotNil(t, conf)

	sent := s.lastSubmission().PhotoCode
	assert.True(t, strings.HasPrefix(sent, "WS-I-"))
	assert.Equal(t, sent, conf.PhotoCode)

	got, err := svc.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Confirmation)
	assert.Equal(t, sent, got.Confirmation.PhotoCode)
	assert.NotEqual(t, edited.Record.PhotoCode, got.Confirmation.PhotoCode)
}

func TestConcurrentSubmitsCallSinkOnce(t *testing.T) {
	ctx := context.Background()
	s := &fakeSink{}
	svc, _ := newTestService(t, s)
	d, err := svc.CreateDraft(ctx)
	require.NoError(t, err)
	fillValid(t, svc, d.ID)

	const n = 16
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Submit(ctx, d.ID); err == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, s.calls.Load())
	assert.EqualValues(t, 1, successes.Load())
}

func TestStalePendingFlagDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	s := &fakeSink{}
	svc, store := newTestService(t, s)
	d, err := svc.CreateDraft(ctx)
	require.NoError(t, err)
	fillValid(t, svc, d.ID)

	// 模拟进程在提交途中退出留下的标记
	started := time.Now().Add(-time.Minute)
	_, err = store.Update(ctx, d.ID, func(dr *model.Draft) error {
		dr.Submitting = true
		dr.SubmitStartedAt = started
		return nil
	})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, d.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, s.calls.Load())
}

func TestSubmitDetachedFromRequestCancel(t *testing.T) {
	s := &fakeSink{}
	svc, _ := newTestService(t, s)
	d, err := svc.CreateDraft(context.Background())
	require.NoError(t, err)
	fillValid(t, svc, d.ID)

	ctx, cancel := context.WithCancel(context.Background())
	s.entered = make(chan struct{}, 1)
	s.release = make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, d.ID)
		done <- err
	}()

	<-s.entered
	cancel()
	close(s.release)
	require.NoError(t, <-done)

	s.mu.Lock()
	ctxErr := s.ctxErr
	s.mu.Unlock()
	assert.NoError(t, ctxErr)

	got, err := svc.GetDraft(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DraftSubmitted, got.Status)
}

func TestNewPhotoCode(t *testing.T) {
	svc, _ := newTestService(t, &fakeSink{})

	res := svc.NewPhotoCode(model.CategoryGroup)
	assert.Equal(t, string(model.CategoryGroup), res.Category)
	assert.True(t, strings.HasPrefix(res.PhotoCode, "WS-G-"))
	assert.True(t, photocode.Valid(res.PhotoCode))
}
