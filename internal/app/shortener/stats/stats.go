package stats

import (
	"sync"
	"time"

	"shortbot.local/internal/app/shortener"
	"shortbot.local/internal/platform/metrics"
)

// Stats 进程内统计：重启后清零
type Stats struct {
	mu        sync.Mutex
	users     map[int64]struct{}
	shortened int
	startedAt time.Time
}

// Snapshot /stats 展示用的一份拷贝
type Snapshot struct {
	Users     int
	Shortened int
	Uptime    time.Duration
}

func New(startedAt time.Time) *Stats {
	return &Stats{
		users:     make(map[int64]struct{}),
		startedAt: startedAt,
	}
}

// SeenUser 记录一个用户，返回是否第一次见到
func (s *Stats) SeenUser(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; ok {
		return false
	}
	s.users[userID] = struct{}{}
	metrics.DistinctUsers.Set(float64(len(s.users)))
	return true
}

// RecordShortened 每成功生成一个短链调用一次（批量里每条都算）
func (s *Stats) RecordShortened(p shortener.ProviderID, flow shortener.Flow) {
	s.mu.Lock()
	s.shortened++
	s.mu.Unlock()

	metrics.ShortenedTotal.WithLabelValues(string(p), string(flow)).Inc()
}

func (s *Stats) Snapshot(now time.Time) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	up := now.Sub(s.startedAt)
	if up < 0 {
		up = 0
	}
	return Snapshot{
		Users:     len(s.users),
		Shortened: s.shortened,
		Uptime:    up,
	}
}
