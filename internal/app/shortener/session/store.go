package session

import (
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Custom 等待选择服务商的自定义别名请求
type Custom struct {
	URL   string
	Alias string
}

// Batch 批量流程的状态：Awaiting 为 true 时下一条文本消息被当作批量输入
type Batch struct {
	Awaiting bool
	URLs     []string
}

// Store 按用户保存三种流程的待处理状态。
//
// 每种流程一个 cache，同一用户同一流程只保留最新一条。
// ttl 为 0 时条目不过期，只在完成或被覆盖时删除。
type Store struct {
	single *cache.Cache
	custom *cache.Cache
	batch  *cache.Cache

	mu    sync.Mutex
	locks map[int64]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func New(ttl time.Duration) *Store {
	exp := ttl
	cleanup := ttl
	if ttl <= 0 {
		exp = cache.NoExpiration
		cleanup = 0
	}
	return &Store{
		single: cache.New(exp, cleanup),
		custom: cache.New(exp, cleanup),
		batch:  cache.New(exp, cleanup),
		locks:  make(map[int64]*userLock),
	}
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// Lock 拿到该用户的互斥锁，返回解锁函数。
// 同一用户的 update 串行处理，不同用户互不影响。
func (s *Store) Lock(userID int64) (unlock func()) {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userLock{}
		s.locks[userID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, userID)
		}
		s.mu.Unlock()
	}
}

func (s *Store) SetSingle(userID int64, url string) {
	s.single.SetDefault(key(userID), url)
}

func (s *Store) Single(userID int64) (string, bool) {
	v, ok := s.single.Get(key(userID))
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (s *Store) DeleteSingle(userID int64) {
	s.single.Delete(key(userID))
}

func (s *Store) SetCustom(userID int64, c Custom) {
	s.custom.SetDefault(key(userID), c)
}

func (s *Store) Custom(userID int64) (Custom, bool) {
	v, ok := s.custom.Get(key(userID))
	if !ok {
		return Custom{}, false
	}
	return v.(Custom), true
}

func (s *Store) DeleteCustom(userID int64) {
	s.custom.Delete(key(userID))
}

// StartBatch 进入等待批量输入状态，同时丢弃之前的批量数据
func (s *Store) StartBatch(userID int64) {
	s.batch.SetDefault(key(userID), Batch{Awaiting: true})
}

// SetBatchURLs 保存校验后的 URL，退出等待状态
func (s *Store) SetBatchURLs(userID int64, urls []string) {
	cp := make([]string, len(urls))
	copy(cp, urls)
	s.batch.SetDefault(key(userID), Batch{URLs: cp})
}

func (s *Store) Batch(userID int64) (Batch, bool) {
	v, ok := s.batch.Get(key(userID))
	if !ok {
		return Batch{}, false
	}
	return v.(Batch), true
}

func (s *Store) AwaitingBatch(userID int64) bool {
	b, ok := s.Batch(userID)
	return ok && b.Awaiting
}

func (s *Store) DeleteBatch(userID int64) {
	s.batch.Delete(key(userID))
}
