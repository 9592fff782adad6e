// Package model 定义领域模型
// 本文件定义报名记录模型（Registration）以及发送给外部提交通道的载荷（Submission）
package model

import "strings"

// ShootCategory 拍摄类别
type ShootCategory string

const (
	// CategoryIndividual 个人写真（默认类别）
	CategoryIndividual ShootCategory = "Individual Portrait"
	// CategoryGroup 团体写真
	CategoryGroup ShootCategory = "Group Portrait"
)

// Categories 表单下拉框可选的类别，按展示顺序排列
var Categories = []ShootCategory{CategoryIndividual, CategoryGroup}

// Valid 是否为下拉框中的合法取值
func (c ShootCategory) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Registration 报名记录
// 仅存在于内存/草稿缓存中，提交成功后即被丢弃
type Registration struct {
	// FullName 姓名，去除首尾空白后不能为空
	FullName string `json:"fullName" label:"Full name" binding:"notblank"`

	// Email 邮箱，必填且需满足 local@domain.tld 的宽松形态
	Email string `json:"email" label:"Email" binding:"notblank,looseemail"`

	// ShootCategory 拍摄类别，默认个人写真
	ShootCategory ShootCategory `json:"shootCategory"`

	// PhotoCode 照片码，类别变化时重新生成
	PhotoCode string `json:"photoCode"`

	// AdditionalEmails 附加联系邮箱，按输入顺序保存，允许空项
	AdditionalEmails []string `json:"additionalEmails"`

	// PhoneNumber 电话（可选）
	PhoneNumber string `json:"phoneNumber"`

	// Notes 备注（可选）
	Notes string `json:"notes"`
}

// NewRegistration 创建表单加载时的空记录
// 默认类别为个人写真，附加邮箱预留一个空输入框
func NewRegistration() Registration {
	return Registration{
		ShootCategory:    CategoryIndividual,
		AdditionalEmails: []string{""},
	}
}

// Clone 深拷贝，避免切片在快照与草稿之间共享
func (r Registration) Clone() Registration {
	cp := r
	if r.AdditionalEmails != nil {
		cp.AdditionalEmails = append([]string(nil), r.AdditionalEmails...)
	}
	return cp
}

// NonEmptyAdditionalEmails 按输入顺序返回非空的附加邮箱
func (r Registration) NonEmptyAdditionalEmails() []string {
	out := make([]string, 0, len(r.AdditionalEmails))
	for _, e := range r.AdditionalEmails {
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

// JoinedAdditionalEmails 以 ", " 连接非空附加邮箱
func (r Registration) JoinedAdditionalEmails() string {
	return strings.Join(r.NonEmptyAdditionalEmails(), ", ")
}

// Submission 发送给外部提交通道的载荷
// 附加邮箱已合并为单个字符串，与表格中的一列对应
type Submission struct {
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	ShootCategory    string `json:"shootCategory"`
	PhotoCode        string `json:"photoCode"`
	AdditionalEmails string `json:"additionalEmails"`
	PhoneNumber      string `json:"phoneNumber"`
	Notes            string `json:"notes"`
}

// ToSubmission 由当前记录生成提交载荷
func (r Registration) ToSubmission() Submission {
	return Submission{
		FullName:         r.FullName,
		Email:            r.Email,
		ShootCategory:    string(r.ShootCategory),
		PhotoCode:        r.PhotoCode,
		AdditionalEmails: r.JoinedAdditionalEmails(),
		PhoneNumber:      r.PhoneNumber,
		Notes:            r.Notes,
	}
}
