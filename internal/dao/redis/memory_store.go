package redis

import (
	"context"
	"sync"
	"time"

	"photo_registration_server/internal/model"
	"photo_registration_server/pkg/errorx"
)

type memoryItem struct {
	draft     *model.Draft
	expiresAt time.Time
}

// MemoryDraftStore 进程内草稿存储
// 每次写入刷新过期时间，过期条目在读取或创建时惰性清理
type MemoryDraftStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
	ttl   time.Duration
	now   func() time.Time
}

// 确保 MemoryDraftStore 实现了 DraftStore 接口
var _ DraftStore = (*MemoryDraftStore)(nil)

// NewMemoryDraftStore 创建内存存储，ttl <= 0 表示永不过期
func NewMemoryDraftStore(ttl time.Duration) *MemoryDraftStore {
	return &MemoryDraftStore{
		items: make(map[string]memoryItem),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *MemoryDraftStore) expiry() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(s.ttl)
}

func (s *MemoryDraftStore) expired(item memoryItem) bool {
	return !item.expiresAt.IsZero() && !s.now().Before(item.expiresAt)
}

// lookup 调用方需持有锁
func (s *MemoryDraftStore) lookup(id string) (memoryItem, bool) {
	item, ok := s.items[id]
	if !ok {
		return memoryItem{}, false
	}
	if s.expired(item) {
		delete(s.items, id)
		return memoryItem{}, false
	}
	return item, true
}

// sweep 清理过期条目，调用方需持有锁
func (s *MemoryDraftStore) sweep() {
	for id, item := range s.items {
		if s.expired(item) {
			delete(s.items, id)
		}
	}
}

func (s *MemoryDraftStore) Create(_ context.Context, d *model.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()
	if _, ok := s.items[d.ID]; ok {
		return errorx.Newf(errorx.CodeCacheError, "draft %s already exists", d.ID)
	}
	s.items[d.ID] = memoryItem{draft: d.Clone(), expiresAt: s.expiry()}
	return nil
}

func (s *MemoryDraftStore) Get(_ context.Context, id string) (*model.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.lookup(id)
	if !ok {
		return nil, errorx.ErrNotFound
	}
	return item.draft.Clone(), nil
}

func (s *MemoryDraftStore) Update(_ context.Context, id string, fn UpdateFunc) (*model.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.lookup(id)
	if !ok {
		return nil, errorx.ErrNotFound
	}
	d := item.draft.Clone()
	if err := fn(d); err != nil {
		return nil, err
	}
	s.items[id] = memoryItem{draft: d, expiresAt: s.expiry()}
	return d.Clone(), nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

// Len 当前未过期的草稿数量
func (s *MemoryDraftStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	return len(s.items)
}
