package respond

import "photo_registration_server/internal/model"

// 确认页文案
const (
	ConfirmationMessage = "Thank you! Your photo request has been submitted. Here is your photo code:"
	ConfirmationHint    = "Please show this code to your photographer"
)

// DraftRespond 草稿视图
// 编辑中返回表单记录；已提交只返回确认信息
type DraftRespond struct {
	ID           string               `json:"id"`
	Status       model.DraftStatus    `json:"status"`
	Record       *model.Registration  `json:"record,omitempty"`
	Submitting   bool                 `json:"submitting"`
	SubmitError  string               `json:"submitError,omitempty"`
	Confirmation *ConfirmationRespond `json:"confirmation,omitempty"`
}

// ConfirmationRespond 提交成功后的确认视图，只包含照片码
type ConfirmationRespond struct {
	ID        string `json:"id"`
	PhotoCode string `json:"photoCode"`
	Message   string `json:"message"`
	Hint      string `json:"hint"`
}

// NewConfirmation 构造确认视图
func NewConfirmation(id, photoCode string) *ConfirmationRespond {
	return &ConfirmationRespond{
		ID:        id,
		PhotoCode: photoCode,
		Message:   ConfirmationMessage,
		Hint:      ConfirmationHint,
	}
}
