package random

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
)

// Source 随机源，只需要 [0, n) 的整数
// *math/rand/v2.Rand 天然满足该接口
type Source interface {
	IntN(n int) int
}

// secureSource 基于 crypto/rand 的随机源（生产环境使用）
type secureSource struct{}

// NewSecureSource 返回不可预测的随机源
func NewSecureSource() Source {
	return secureSource{}
}

func (secureSource) IntN(n int) int {
	if n <= 0 {
		panic("random: invalid argument to IntN")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand 读取失败时退回到 math/rand，保证调用方不会拿到错误
		return mrand.IntN(n)
	}
	return int(v.Int64())
}

// NewSeededSource 返回可复现的随机源（测试使用）
// 注意：返回值不是并发安全的，由调用方加锁
func NewSeededSource(seed uint64) Source {
	return mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// String 从 charset 中独立、均匀地抽取 length 个字符
func String(src Source, charset string, length int) string {
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[src.IntN(len(charset))]
	}
	return string(result)
}
