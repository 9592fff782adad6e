package request

import "photo_registration_server/internal/model"

// UpdateRegistrationRequest 部分更新表单字段
// 字段为 nil 表示不修改；类别实际变化时重新生成照片码
type UpdateRegistrationRequest struct {
	FullName      *string              `json:"fullName"`
	Email         *string              `json:"email"`
	ShootCategory *model.ShootCategory `json:"shootCategory" binding:"omitempty,oneof='Individual Portrait' 'Group Portrait'"`
	PhoneNumber   *string              `json:"phoneNumber"`
	Notes         *string              `json:"notes"`
}
