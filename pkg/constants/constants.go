package constants

const (
	PHOTO_CODE_ALPHABET     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" // 照片码字符集
	PHOTO_CODE_LENGTH       = 5                                      // 前缀之后的随机字符数
	PHOTO_CODE_PREFIX_SOLO  = "WS-I-"                                // 个人写真前缀
	PHOTO_CODE_PREFIX_GROUP = "WS-G-"                                // 其他类别（团体）前缀
	DRAFT_TTL_MINUTES       = 120                                    // 草稿默认有效期（分钟）
	SINK_TIMEOUT_SECONDS    = 10                                     // 提交通道默认超时（秒）
	MAX_ADDITIONAL_EMAILS   = 20                                     // 附加邮箱数量上限
	REDIS_DRAFT_KEY_PREFIX  = "photo_reg:draft:"                     // Redis 草稿 key 前缀
)
