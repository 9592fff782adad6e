// Package photocode 生成照片码
// 照片码仅用于现场展示给摄影师，不保证唯一，也不做持久化
package photocode

import (
	"strings"
	"sync"

	"photo_registration_server/internal/model"
	"photo_registration_server/pkg/constants"
	"photo_registration_server/pkg/util/random"
)

// Generator 照片码生成器，可被多个 goroutine 共享
type Generator struct {
	mu  sync.Mutex
	src random.Source
}

// NewGenerator 使用指定随机源创建生成器
// src 为 nil 时使用 crypto/rand
func NewGenerator(src random.Source) *Generator {
	if src == nil {
		src = random.NewSecureSource()
	}
	return &Generator{src: src}
}

// Generate 根据拍摄类别生成照片码
// 个人写真使用 WS-I- 前缀，其余任何取值均使用 WS-G- 前缀
func (g *Generator) Generate(category model.ShootCategory) string {
	g.mu.Lock()
	body := random.String(g.src, constants.PHOTO_CODE_ALPHABET, constants.PHOTO_CODE_LENGTH)
	g.mu.Unlock()
	return Prefix(category) + body
}

// Prefix 返回类别对应的前缀
func Prefix(category model.ShootCategory) string {
	if category == model.CategoryIndividual {
		return constants.PHOTO_CODE_PREFIX_SOLO
	}
	return constants.PHOTO_CODE_PREFIX_GROUP
}

// Valid 检查照片码形态：合法前缀 + 5 位 A-Z0-9
func Valid(code string) bool {
	var body string
	switch {
	case strings.HasPrefix(code, constants.PHOTO_CODE_PREFIX_SOLO):
		body = strings.TrimPrefix(code, constants.PHOTO_CODE_PREFIX_SOLO)
	case strings.HasPrefix(code, constants.PHOTO_CODE_PREFIX_GROUP):
		body = strings.TrimPrefix(code, constants.PHOTO_CODE_PREFIX_GROUP)
	default:
		return false
	}
	if len(body) != constants.PHOTO_CODE_LENGTH {
		return false
	}
	for i := 0; i < len(body); i++ {
		if strings.IndexByte(constants.PHOTO_CODE_ALPHABET, body[i]) < 0 {
			return false
		}
	}
	return true
}
