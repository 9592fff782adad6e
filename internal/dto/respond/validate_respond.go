package respond

// ValidateRespond 校验结果，Errors 为空表示可以提交
type ValidateRespond struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}
