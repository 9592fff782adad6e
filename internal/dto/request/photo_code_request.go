package request

// PhotoCodeRequest 预览照片码
// GET /photo-codes?category=Group%20Portrait，缺省为个人写真
type PhotoCodeRequest struct {
	Category string `form:"category"`
}
