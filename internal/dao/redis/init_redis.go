package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"photo_registration_server/internal/config"
)

// NewClient 根据配置创建 Redis 客户端并检查连通性
func NewClient(ctx context.Context, conf config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr(),
		Password: conf.Password,
		DB:       conf.Db,
		// 连接池配置
		PoolSize:     20,
		MinIdleConns: 5,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", conf.Addr(), err)
	}
	return client, nil
}

// NewDraftStore 根据 draftConfig.store 选择存储实现
// 返回的 closer 用于关闭底层连接，内存实现返回空操作
func NewDraftStore(ctx context.Context, conf *config.Config) (DraftStore, func() error, error) {
	ttl := time.Duration(conf.DraftConfig.TTL) * time.Minute
	switch conf.DraftConfig.Store {
	case "", "memory":
		zap.L().Info("使用内存草稿存储", zap.Duration("ttl", ttl))
		return NewMemoryDraftStore(ttl), func() error { return nil }, nil
	case "redis":
		client, err := NewClient(ctx, conf.RedisConfig)
		if err != nil {
			return nil, nil, err
		}
		zap.L().Info("使用 Redis 草稿存储", zap.String("addr", conf.RedisConfig.Addr()), zap.Duration("ttl", ttl))
		return NewRedisDraftStore(client, ttl), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown draft store %q", conf.DraftConfig.Store)
	}
}
