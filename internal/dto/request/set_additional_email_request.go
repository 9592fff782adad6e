package request

// SetAdditionalEmailRequest 修改某个附加邮箱输入框的值，允许清空
type SetAdditionalEmailRequest struct {
	Value string `json:"value"`
}
