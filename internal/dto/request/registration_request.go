package request

import "photo_registration_server/internal/model"

// RegistrationRequest 无状态校验接口使用的完整记录
// 不带 binding 标签：字段错误由表单校验器逐项返回，而不是作为参数错误
type RegistrationRequest struct {
	FullName         string   `json:"fullName"`
	Email            string   `json:"email"`
	ShootCategory    string   `json:"shootCategory"`
	PhotoCode        string   `json:"photoCode"`
	AdditionalEmails []string `json:"additionalEmails"`
	PhoneNumber      string   `json:"phoneNumber"`
	Notes            string   `json:"notes"`
}

// ToModel 转换为领域模型，类别为空时使用默认类别
func (r RegistrationRequest) ToModel() model.Registration {
	category := model.ShootCategory(r.ShootCategory)
	if category == "" {
		category = model.CategoryIndividual
	}
	return model.Registration{
		FullName:         r.FullName,
		Email:            r.Email,
		ShootCategory:    category,
		PhotoCode:        r.PhotoCode,
		AdditionalEmails: r.AdditionalEmails,
		PhoneNumber:      r.PhoneNumber,
		Notes:            r.Notes,
	}
}
