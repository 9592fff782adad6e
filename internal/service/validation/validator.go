// Package validation 实现报名表单校验
// 基于 go-playground/validator，同一个校验引擎同时注册为 gin 的 binding.Validator，
// 因此请求参数绑定错误与表单字段错误使用同一套翻译
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"go.uber.org/zap"

	"photo_registration_server/internal/model"
)

const (
	tagNotBlank   = "notblank"
	tagLooseEmail = "looseemail"
)

// looseEmailPattern 宽松的邮箱形态检查：非空白@非空白.非空白，不做 RFC 校验
var looseEmailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// FieldErrors 逐字段的校验错误，每个被校验字段一个槽位，空字符串表示无错误
type FieldErrors struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Empty 没有任何错误时记录可以提交
func (f FieldErrors) Empty() bool {
	return f.FullName == "" && f.Email == ""
}

// Map 转换为 字段名 -> 错误消息，仅包含出错字段
func (f FieldErrors) Map() map[string]string {
	m := make(map[string]string, 2)
	if f.FullName != "" {
		m["fullName"] = f.FullName
	}
	if f.Email != "" {
		m["email"] = f.Email
	}
	return m
}

// Validator 表单校验器
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator

	mu     sync.RWMutex
	labels map[string]string // json 字段名 -> 展示名
}

// New 创建校验器并注册翻译
// locale 支持 "en" 与 "zh"，其他取值回退为英文
func New(locale string) (*Validator, error) {
	v := &Validator{
		validate: validator.New(),
		labels:   make(map[string]string),
	}

	// 与 gin 默认引擎保持一致，读取 binding 标签
	v.validate.SetTagName("binding")

	// 错误信息中的字段名使用 json tag，与前端字段名对应
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.validate.RegisterValidation(tagNotBlank, notBlank); err != nil {
		return nil, err
	}
	if err := v.validate.RegisterValidation(tagLooseEmail, looseEmail); err != nil {
		return nil, err
	}

	enT := en.New()
	uni := ut.New(enT, enT, zh.New())
	trans, ok := uni.GetTranslator(locale)
	if !ok {
		trans, _ = uni.GetTranslator("en")
		locale = "en"
	}
	v.trans = trans

	var err error
	switch locale {
	case "zh":
		err = zh_translations.RegisterDefaultTranslations(v.validate, trans)
	default:
		err = en_translations.RegisterDefaultTranslations(v.validate, trans)
	}
	if err != nil {
		return nil, fmt.Errorf("register default translations: %w", err)
	}
	if err := v.registerCustomTranslations(locale); err != nil {
		return nil, err
	}

	v.RegisterLabels(model.Registration{})
	return v, nil
}

func (v *Validator) registerCustomTranslations(locale string) error {
	messages := map[string]string{
		tagNotBlank:   "{0} is required",
		tagLooseEmail: "Please enter a valid email",
	}
	if locale == "zh" {
		messages = map[string]string{
			tagNotBlank:   "{0}为必填字段",
			tagLooseEmail: "请输入有效的邮箱",
		}
	}
	for tag, text := range messages {
		tag, text := tag, text
		err := v.validate.RegisterTranslation(tag, v.trans,
			func(t ut.Translator) error {
				return t.Add(tag, text, true)
			},
			func(t ut.Translator, fe validator.FieldError) string {
				msg, err := t.T(tag, v.label(fe.Field()))
				if err != nil {
					zap.L().Warn("translate field error", zap.String("tag", tag), zap.Error(err))
					return fe.Error()
				}
				return msg
			},
		)
		if err != nil {
			return fmt.Errorf("register %s translation: %w", tag, err)
		}
	}
	return nil
}

// RegisterLabels 读取结构体的 label 标签，作为错误信息中的字段展示名
func (v *Validator) RegisterLabels(structs ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, s := range structs {
		t := reflect.TypeOf(s)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			continue
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			label := f.Tag.Get("label")
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if label == "" || name == "" || name == "-" {
				continue
			}
			v.labels[name] = label
		}
	}
}

func (v *Validator) label(field string) string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if l, ok := v.labels[field]; ok {
		return l
	}
	return field
}

// Check 校验报名记录，返回逐字段错误
// 各规则相互独立，不会因某个字段出错而跳过其他字段；无副作用，可重复调用
func (v *Validator) Check(rec model.Registration) FieldErrors {
	var out FieldErrors
	err := v.validate.Struct(rec)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		zap.L().Error("unexpected validation error", zap.Error(err))
		return out
	}
	for _, fe := range verrs {
		switch fe.StructField() {
		case "FullName":
			out.FullName = fe.Translate(v.trans)
		case "Email":
			out.Email = fe.Translate(v.trans)
		}
	}
	return out
}

// Translate 翻译任意结构体的校验错误，key 为 json 字段名
func (v *Validator) Translate(errs validator.ValidationErrors) map[string]string {
	res := make(map[string]string, len(errs))
	for _, fe := range errs {
		res[fe.Field()] = fe.Translate(v.trans)
	}
	return res
}

// ValidateStruct 实现 gin binding.StructValidator
// 只校验结构体（及其指针），其他类型直接放行
func (v *Validator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	val := reflect.ValueOf(obj)
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}
	return v.validate.Struct(obj)
}

// Engine 实现 gin binding.StructValidator
func (v *Validator) Engine() any {
	return v.validate
}

// InstallGinValidator 替换 gin 的全局 binding.Validator
// 使 ShouldBindJSON 等方法使用本校验器及其自定义标签
func (v *Validator) InstallGinValidator() {
	binding.Validator = v
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.String {
		return strings.TrimSpace(field.String()) != ""
	}
	return !field.IsZero()
}

func looseEmail(fl validator.FieldLevel) bool {
	return looseEmailPattern.MatchString(fl.Field().String())
}
