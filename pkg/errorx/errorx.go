package errorx

import (
	"errors"
	"fmt"
)

// CodeError 带业务错误码的自定义错误
// 支持 %w 包装底层错误，可被 errors.Is/errors.As 识别
// Data 用于携带需要返回给前端的附加信息（如逐字段的校验错误）
type CodeError struct {
	Code  int    // 业务错误码
	Msg   string // 错误消息
	Data  any    // 附加数据，可为空
	cause error  // 被包装的底层错误
}

// Error 实现 error 接口
// 存在底层错误时返回 "消息: 底层错误"，否则仅返回消息
func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap 支持 errors.Is/errors.As 向下追溯
func (e *CodeError) Unwrap() error {
	return e.cause
}

// Is 按业务码比较，使预定义错误实例可直接用于 errors.Is
func (e *CodeError) Is(target error) bool {
	var t *CodeError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithData 返回携带附加数据的副本，不修改原实例
func (e *CodeError) WithData(data any) *CodeError {
	cp := *e
	cp.Data = data
	return &cp
}

// New 创建一个新的 CodeError
func New(code int, msg string) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  msg,
	}
}

// Newf 创建一个带格式化消息的 CodeError
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap 包装底层错误，添加业务错误码和消息
// 用法: errorx.Wrap(err, CodeSubmitFailed, "提交失败")
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   msg,
		cause: err,
	}
}

// Wrapf 包装底层错误，支持格式化消息
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// GetCode 从错误中提取业务错误码，如果不是 CodeError 则返回默认码
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy
}

// 业务状态码常量定义
const (
	CodeSuccess          = 1000 // 成功
	CodeInvalidParam     = 1001 // 请求参数错误
	CodeServerBusy       = 1005 // 服务繁忙
	CodeNotFound         = 1008 // 资源不存在
	CodeCacheError       = 1011 // 缓存错误
	CodeValidationFailed = 1020 // 表单校验未通过
	CodeSubmitInProgress = 1021 // 提交进行中
	CodeSubmitFailed     = 1022 // 外部提交失败
	CodeAlreadySubmitted = 1023 // 表单已提交
	CodeSinkError        = 1024 // 提交通道错误（网络、非成功响应）
)

// 预定义常用错误实例
// 既可直接返回，也可用于 errors.Is 比较
var (
	ErrInvalidParam     = New(CodeInvalidParam, "Invalid request parameters")
	ErrServerBusy       = New(CodeServerBusy, "Service is busy, please try again later")
	ErrNotFound         = New(CodeNotFound, "Registration not found")
	ErrSubmitInProgress = New(CodeSubmitInProgress, "Your registration is already being submitted")
	ErrAlreadySubmitted = New(CodeAlreadySubmitted, "This registration has already been submitted")
	ErrSubmitFailed     = New(CodeSubmitFailed, "There was an error submitting your registration. Please try again later.")
)

// IsNotFound 检查错误是否为"未找到"类型
func IsNotFound(err error) bool {
	var codeErr *CodeError
	return errors.As(err, &codeErr) && codeErr.Code == CodeNotFound
}
