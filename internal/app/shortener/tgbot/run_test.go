package tgbot

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortbot.local/internal/app/shortener"
)

// inflightShortener 记录同时进行中的调用数
type inflightShortener struct {
	mu       sync.Mutex
	inflight int
	max      int
	calls    int
	urls     []string
	delay    time.Duration
}

func (s *inflightShortener) Shorten(_ context.Context, url string, _ shortener.ProviderID, _ string) shortener.Result {
	s.mu.Lock()
	s.calls++
	s.urls = append(s.urls, url)
	s.inflight++
	if s.inflight > s.max {
		s.max = s.inflight
	}
	s.mu.Unlock()

	time.Sleep(s.delay)

	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
	return shortener.Success{URL: "https://da.gd/x"}
}

func runUpdates(t *testing.T, h *harness, updates ...tgbotapi.Update) {
	t.Helper()
	ch := make(chan tgbotapi.Update, len(updates))
	for _, u := range updates {
		ch <- u
	}
	close(ch)

	done := make(chan struct{})
	go func() {
		h.bot.Run(context.Background(), ch)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRun_SameUserSerialized(t *testing.T) {
	h := newHarness(t)
	sh := &inflightShortener{delay: 200 * time.Millisecond}
	h.bot.shortener = sh

	h.send(text(1, "example.com"))

	// 两次选择背靠背到达：只有一次能拿到待处理的 URL
	runUpdates(t, h, callback(1, "da_gd"), callback(1, "da_gd"))

	assert.Equal(t, 1, sh.calls)
	assert.Equal(t, 1, sh.max)
	assert.Equal(t, 1, h.stats.Snapshot(time.Now()).Shortened)

	texts := h.sender.texts()
	assert.Contains(t, texts, msgURLNotFound)
	assert.Contains(t, texts, "✅ da.gd\n\n🔗 https://da.gd/x")
	_, ok := h.store.Single(1)
	assert.False(t, ok)
}

func TestRun_SameUserBatchNotCorrupted(t *testing.T) {
	h := newHarness(t)
	sh := &inflightShortener{delay: 50 * time.Millisecond}
	h.bot.shortener = sh

	h.send(command(1, "/batch"))
	h.send(text(1, "a.com\nb.com\nc.com"))

	// 批量处理中又发来一个新的 URL：两个 update 不会交错
	runUpdates(t, h, callback(1, "batch_da_gd"), text(1, "d.com"))

	assert.Equal(t, 3, sh.calls)
	assert.Equal(t, 1, sh.max)
	assert.Equal(t, []string{"https://a.com", "https://b.com", "https://c.com"}, sh.urls)

	single, ok := h.store.Single(1)
	require.True(t, ok)
	assert.Equal(t, "https://d.com", single)

	// 用户看到的顺序：批量进度、批量结果，然后才是新 URL 的服务商选择
	report := batchReportText(shortener.DaGd, []string{
		"1. ✅ https://da.gd/x",
		"2. ✅ https://da.gd/x",
		"3. ✅ https://da.gd/x",
	}, 3, 3)
	texts := h.sender.texts()
	require.Len(t, texts, 5)
	assert.Equal(t, []string{
		msgBatchIntro,
		batchPromptText([]string{"https://a.com", "https://b.com", "https://c.com"}),
		batchProgressText(3, shortener.DaGd),
		report,
		singlePromptText("https://d.com"),
	}, texts)
}

func TestRun_SameUserKeepsArrivalOrder(t *testing.T) {
	// /batch 和 URL 列表在同一次轮询里到达，列表必须被当作批量输入
	for i := 0; i < 100; i++ {
		h := newHarness(t)

		runUpdates(t, h, command(1, "/batch"), text(1, "a.com\nb.com"))

		_, ok := h.store.Single(1)
		require.False(t, ok, "run %d: url list handled as a single url", i)

		batch, ok := h.store.Batch(1)
		require.True(t, ok, "run %d", i)
		assert.False(t, batch.Awaiting)
		assert.Equal(t, []string{"https://a.com", "https://b.com"}, batch.URLs)

		require.Equal(t, []string{
			msgBatchIntro,
			batchPromptText([]string{"https://a.com", "https://b.com"}),
		}, h.sender.texts(), "run %d", i)
	}
}

func TestRun_SameUserTextsInOrder(t *testing.T) {
	h := newHarness(t)

	var updates []tgbotapi.Update
	var want []string
	for i := 0; i < 20; i++ {
		url := fmt.Sprintf("https://example.com/%d", i)
		updates = append(updates, text(1, url))
		want = append(want, singlePromptText(url))
	}
	runUpdates(t, h, updates...)

	assert.Equal(t, want, h.sender.texts())
	single, ok := h.store.Single(1)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/19", single, "last message wins")
}

func TestRun_DifferentUsersInParallel(t *testing.T) {
	h := newHarness(t)
	sh := &inflightShortener{delay: 300 * time.Millisecond}
	h.bot.shortener = sh

	h.send(text(1, "a.com"))
	h.send(text(2, "b.com"))

	runUpdates(t, h, callback(1, "da_gd"), callback(2, "da_gd"))

	assert.Equal(t, 2, sh.calls)
	assert.Equal(t, 2, sh.max)
	assert.Equal(t, 2, h.stats.Snapshot(time.Now()).Shortened)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	h := newHarness(t)
	ch := make(chan tgbotapi.Update)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.bot.Run(ctx, ch)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
