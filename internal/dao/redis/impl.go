// Package redis 提供 DraftStore 接口的 Redis 实现
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"photo_registration_server/internal/model"
	"photo_registration_server/pkg/constants"
	"photo_registration_server/pkg/errorx"
)

// maxUpdateRetries WATCH 冲突时的最大重试次数
const maxUpdateRetries = 5

// RedisDraftStore 基于 Redis 的草稿存储
// 草稿以 JSON 存储，每次写入刷新 TTL；Update 使用 WATCH/MULTI 实现乐观锁
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// 确保 RedisDraftStore 实现了 DraftStore 接口
var _ DraftStore = (*RedisDraftStore)(nil)

// NewRedisDraftStore 创建 Redis 草稿存储
func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{
		client: client,
		ttl:    ttl,
		prefix: constants.REDIS_DRAFT_KEY_PREFIX,
	}
}

func (r *RedisDraftStore) key(id string) string {
	return r.prefix + id
}

func (r *RedisDraftStore) Create(ctx context.Context, d *model.Draft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "encode draft")
	}
	ok, err := r.client.SetNX(ctx, r.key(d.ID), payload, r.ttl).Result()
	if err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis setnx draft %s", d.ID)
	}
	if !ok {
		return errorx.Newf(errorx.CodeCacheError, "draft %s already exists", d.ID)
	}
	return nil
}

func (r *RedisDraftStore) Get(ctx context.Context, id string) (*model.Draft, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errorx.Wrapf(err, errorx.CodeNotFound, "draft %s not found", id)
		}
		return nil, errorx.Wrapf(err, errorx.CodeCacheError, "redis get draft %s", id)
	}
	return decodeDraft(raw)
}

func (r *RedisDraftStore) Update(ctx context.Context, id string, fn UpdateFunc) (*model.Draft, error) {
	key := r.key(id)
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		var (
			updated *model.Draft
			fnErr   error
		)
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			raw, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				return err
			}
			d, err := decodeDraft(raw)
			if err != nil {
				return err
			}
			if fnErr = fn(d); fnErr != nil {
				return fnErr
			}
			payload, err := json.Marshal(d)
			if err != nil {
				return err
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, payload, r.ttl)
				return nil
			})
			updated = d
			return err
		}, key)

		switch {
		case err == nil:
			return updated, nil
		case fnErr != nil:
			return nil, fnErr
		case errors.Is(err, redis.TxFailedErr):
			zap.L().Debug("draft update conflict, retrying", zap.String("id", id), zap.Int("attempt", attempt+1))
			continue
		case errors.Is(err, redis.Nil):
			return nil, errorx.Wrapf(err, errorx.CodeNotFound, "draft %s not found", id)
		default:
			return nil, errorx.Wrapf(err, errorx.CodeCacheError, "redis update draft %s", id)
		}
	}
	return nil, errorx.Newf(errorx.CodeCacheError, "redis update draft %s: too many concurrent updates", id)
}

func (r *RedisDraftStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return errorx.Wrapf(err, errorx.CodeCacheError, "redis del draft %s", id)
	}
	return nil
}

func decodeDraft(raw []byte) (*model.Draft, error) {
	var d model.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, errorx.Wrap(err, errorx.CodeCacheError, "decode draft")
	}
	return &d, nil
}
