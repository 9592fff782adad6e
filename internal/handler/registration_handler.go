// Package handler 提供 HTTP 请求处理器
// 本文件处理报名表单相关的 API 请求
package handler

import (
	"strconv"

	"photo_registration_server/internal/dto/request"
	"photo_registration_server/internal/model"
	"photo_registration_server/internal/service"
	"photo_registration_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// RegistrationHandler 报名请求处理器
// 通过构造函数注入 RegistrationService，遵循依赖倒置原则
type RegistrationHandler struct {
	registrationSvc service.RegistrationService
}

// NewRegistrationHandler 创建报名处理器实例
func NewRegistrationHandler(registrationSvc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationSvc: registrationSvc}
}

// Create 打开表单，创建草稿
// POST /registrations
// 响应: respond.DraftRespond
func (h *RegistrationHandler) Create(c *gin.Context) {
	data, err := h.registrationSvc.CreateDraft(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Get 获取草稿
// GET /registrations/:id
func (h *RegistrationHandler) Get(c *gin.Context) {
	data, err := h.registrationSvc.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Update 修改表单字段
// PATCH /registrations/:id
// 请求体: request.UpdateRegistrationRequest
func (h *RegistrationHandler) Update(c *gin.Context) {
	// 1. 绑定并验证请求参数
	var req request.UpdateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}

	// 2. 调用 Service 层处理业务逻辑
	data, err := h.registrationSvc.UpdateFields(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	// 3. 返回成功响应
	HandleSuccess(c, data)
}

// AddEmail 追加一个附加邮箱输入框
// POST /registrations/:id/emails
func (h *RegistrationHandler) AddEmail(c *gin.Context) {
	data, err := h.registrationSvc.AddEmail(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SetEmail 修改附加邮箱
// PUT /registrations/:id/emails/:index
// 请求体: request.SetAdditionalEmailRequest
func (h *RegistrationHandler) SetEmail(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		HandleError(c, errorx.Newf(errorx.CodeInvalidParam, "Invalid additional email index %q", c.Param("index")))
		return
	}
	var req request.SetAdditionalEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.registrationSvc.SetAdditionalEmail(c.Request.Context(), c.Param("id"), index, req.Value)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Validate 校验草稿
// POST /registrations/:id/validate
// 响应: respond.ValidateRespond
func (h *RegistrationHandler) Validate(c *gin.Context) {
	data, err := h.registrationSvc.Validate(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ValidateRecord 无状态校验
// POST /registrations/validate
// 请求体: request.RegistrationRequest
func (h *RegistrationHandler) ValidateRecord(c *gin.Context) {
	var req request.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	HandleSuccess(c, h.registrationSvc.ValidateRecord(req.ToModel()))
}

// Submit 提交报名
// POST /registrations/:id/submit
// 响应: respond.ConfirmationRespond；校验失败时 data 为逐字段错误
func (h *RegistrationHandler) Submit(c *gin.Context) {
	data, err := h.registrationSvc.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// PhotoCode 预览照片码
// GET /photo-codes?category=
// 响应: respond.PhotoCodeRespond
func (h *RegistrationHandler) PhotoCode(c *gin.Context) {
	var req request.PhotoCodeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	category := model.ShootCategory(req.Category)
	if category == "" {
		category = model.CategoryIndividual
	}
	HandleSuccess(c, h.registrationSvc.NewPhotoCode(category))
}
