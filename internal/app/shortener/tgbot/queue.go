package tgbot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// userQueues 按到达顺序把 update 分给每个用户的 worker。
// 同一用户同时最多一个 worker，队列空了 worker 退出并删掉条目。
type userQueues struct {
	handle func(context.Context, tgbotapi.Update)
	ctx    context.Context

	wg     sync.WaitGroup
	mu     sync.Mutex
	queues map[int64][]tgbotapi.Update
}

func newUserQueues(ctx context.Context, handle func(context.Context, tgbotapi.Update)) *userQueues {
	return &userQueues{
		handle: handle,
		ctx:    ctx,
		queues: make(map[int64][]tgbotapi.Update),
	}
}

// enqueue 必须在读 updates 的那个 goroutine 里调用，顺序才和到达顺序一致
func (q *userQueues) enqueue(u tgbotapi.Update) {
	from := updateUser(u)
	if from == nil {
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			q.handle(q.ctx, u)
		}()
		return
	}

	q.mu.Lock()
	pending, busy := q.queues[from.ID]
	q.queues[from.ID] = append(pending, u)
	q.mu.Unlock()

	if !busy {
		q.wg.Add(1)
		go q.work(from.ID)
	}
}

func (q *userQueues) work(userID int64) {
	defer q.wg.Done()
	for {
		q.mu.Lock()
		pending := q.queues[userID]
		if len(pending) == 0 {
			delete(q.queues, userID)
			q.mu.Unlock()
			return
		}
		u := pending[0]
		pending[0] = tgbotapi.Update{}
		q.queues[userID] = pending[1:]
		q.mu.Unlock()

		q.handle(q.ctx, u)
	}
}

// wait 等所有 worker 把已入队的 update 处理完
func (q *userQueues) wait() {
	q.wg.Wait()
}
