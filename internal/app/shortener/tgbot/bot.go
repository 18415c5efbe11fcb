// Package tgbot 把 Telegram update 翻译成短链流程：命令、单链、自定义别名、批量。
//
// 领域逻辑在 internal/app/shortener，这里只做参数解析、会话读写和回复格式。
package tgbot

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"shortbot.local/internal/app/shortener"
	"shortbot.local/internal/app/shortener/session"
	"shortbot.local/internal/app/shortener/stats"
)

// Sender 是 *tgbotapi.BotAPI 里用到的那部分，测试里换成假的
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Bot struct {
	sender    Sender
	shortener shortener.Shortener
	store     *session.Store
	stats     *stats.Stats
	logger    *zap.Logger
	now       func() time.Time

	handle HandlerFunc
}

func New(sender Sender, sh shortener.Shortener, store *session.Store, st *stats.Stats, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Bot{
		sender:    sender,
		shortener: sh,
		store:     store,
		stats:     st,
		logger:    logger.Named("tgbot"),
		now:       time.Now,
	}
	b.handle = chain(b.dispatch,
		Metrics(),
		Trace(),
		AccessLog(b.logger),
		Recovery(b.logger),
		UserLock(store),
	)
	return b
}

// Run 消费 updates 直到 ctx 取消或 channel 关闭，返回前等待已收到的 update 处理完。
// 同一用户的 update 按到达顺序逐个处理，不同用户并行；已经开始的处理不跟随 ctx 取消。
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	q := newUserQueues(context.WithoutCancel(ctx), b.HandleUpdate)
	defer q.wait()

	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			q.enqueue(u)
		}
	}
}

// HandleUpdate 同步处理一个 update
func (b *Bot) HandleUpdate(ctx context.Context, u tgbotapi.Update) {
	b.handle(ctx, u)
}

func (b *Bot) dispatch(ctx context.Context, u tgbotapi.Update) {
	if from := updateUser(u); from != nil {
		b.stats.SeenUser(from.ID)
	}

	switch {
	case u.CallbackQuery != nil:
		b.handleCallback(ctx, u.CallbackQuery)
	case u.Message != nil:
		b.handleMessage(ctx, u.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, m *tgbotapi.Message) {
	if m.From == nil {
		return
	}
	if m.IsCommand() {
		b.handleCommand(ctx, m)
		return
	}
	// 图片、贴纸等非文本消息忽略
	if m.Text == "" {
		return
	}
	if b.store.AwaitingBatch(m.From.ID) {
		b.collectBatch(ctx, m)
		return
	}
	b.intakeSingle(ctx, m)
}

func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	b.answer(ctx, q)
	if q.From == nil || q.Message == nil {
		return
	}

	switch data := q.Data; {
	case strings.HasPrefix(data, batchPrefix):
		b.completeBatch(ctx, q)
	case strings.HasPrefix(data, customPrefix):
		b.completeCustom(ctx, q)
	default:
		p, ok := shortener.ParseProvider(data)
		if !ok {
			b.edit(ctx, q.Message, msgBadProvider)
			return
		}
		b.completeSingle(ctx, q, p)
	}
}

func (b *Bot) log(ctx context.Context) *zap.Logger {
	if id := RequestID(ctx); id != "" {
		return b.logger.With(zap.String("request_id", id))
	}
	return b.logger
}

// send 发送失败只记日志，不中断处理
func (b *Bot) send(ctx context.Context, c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m, err := b.sender.Send(c)
	if err != nil {
		b.log(ctx).Warn("telegram send failed", zap.Error(err))
	}
	return m, err
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	_, _ = b.send(ctx, tgbotapi.NewMessage(chatID, text))
}

// replyMarkdown 带键盘的 Markdown 回复；URL 里有特殊字符导致实体解析失败时退回纯文本，
// 其他错误不重发。
func (b *Bot) replyMarkdown(ctx context.Context, chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = kb
	_, err := b.sender.Send(msg)
	if err == nil {
		return
	}
	if !isEntityParseError(err) {
		b.log(ctx).Warn("telegram send failed", zap.Error(err))
		return
	}
	b.log(ctx).Debug("markdown reply rejected, retrying as plain text", zap.Error(err))
	msg.ParseMode = ""
	_, _ = b.send(ctx, msg)
}

// isEntityParseError Bot API 对 Markdown 解析失败返回 400 "can't parse entities"
func isEntityParseError(err error) bool {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusBadRequest && strings.Contains(apiErr.Message, "can't parse entities")
}

func (b *Bot) replyKeyboard(ctx context.Context, chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	_, _ = b.send(ctx, msg)
}

// edit 改写带键盘的那条消息，键盘随之消失
func (b *Bot) edit(ctx context.Context, m *tgbotapi.Message, text string) {
	_, _ = b.send(ctx, tgbotapi.NewEditMessageText(m.Chat.ID, m.MessageID, text))
}

// answer 应答回调，让客户端停止转圈
func (b *Bot) answer(ctx context.Context, q *tgbotapi.CallbackQuery) {
	if _, err := b.sender.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		b.log(ctx).Warn("answer callback failed", zap.Error(err))
	}
}
