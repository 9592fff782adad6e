package respond

// PhotoCodeRespond 照片码预览
type PhotoCodeRespond struct {
	Category  string `json:"category"`
	PhotoCode string `json:"photoCode"`
}
