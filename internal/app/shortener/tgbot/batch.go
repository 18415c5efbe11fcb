package tgbot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	oteltrace "go.opentelemetry.io/otel/trace"

	"shortbot.local/internal/app/shortener"
	"shortbot.local/internal/platform/trace"
)

// cmdBatch 进入等待状态，下一条文本就是批量输入
func (b *Bot) cmdBatch(ctx context.Context, m *tgbotapi.Message) {
	b.store.StartBatch(m.From.ID)
	b.reply(ctx, m.Chat.ID, msgBatchIntro)
}

// collectBatch 非法行只提示不中断；条数超限或没有可用 URL 时清掉状态，需要重新 /batch
func (b *Bot) collectBatch(ctx context.Context, m *tgbotapi.Message) {
	uid, chatID := m.From.ID, m.Chat.ID

	in, err := shortener.ParseBatch(m.Text)
	switch {
	case errors.Is(err, shortener.ErrBatchTooMany):
		b.store.DeleteBatch(uid)
		b.reply(ctx, chatID, msgBatchTooMany)
		return
	case errors.Is(err, shortener.ErrBatchEmpty):
		b.store.DeleteBatch(uid)
		b.reply(ctx, chatID, msgBatchEmpty)
		return
	}

	if len(in.Invalid) > 0 {
		b.reply(ctx, chatID, batchInvalidText(in.Invalid))
	}
	if errors.Is(err, shortener.ErrBatchNoValid) {
		b.store.DeleteBatch(uid)
		b.reply(ctx, chatID, msgBatchNoValid)
		return
	}

	b.store.SetBatchURLs(uid, in.URLs)
	b.replyKeyboard(ctx, chatID, batchPromptText(in.URLs), providerKeyboard(batchPrefix))
}

// completeBatch 按输入顺序逐个调用，同一个服务商，不并发
func (b *Bot) completeBatch(ctx context.Context, q *tgbotapi.CallbackQuery) {
	p, ok := parseCallbackProvider(q.Data, batchPrefix)
	if !ok {
		b.edit(ctx, q.Message, msgBadProvider)
		return
	}

	uid := q.From.ID
	batch, ok := b.store.Batch(uid)
	if !ok || len(batch.URLs) == 0 {
		b.edit(ctx, q.Message, msgBatchNotFound)
		return
	}
	defer b.store.DeleteBatch(uid)

	markFlow(ctx, p, shortener.FlowBatch)
	oteltrace.SpanFromContext(ctx).SetAttributes(trace.AttrBatchSize.Int(len(batch.URLs)))
	b.edit(ctx, q.Message, batchProgressText(len(batch.URLs), p))

	lines := make([]string, 0, len(batch.URLs))
	succeeded := 0
	for i, url := range batch.URLs {
		res := b.shortener.Shorten(ctx, url, p, "")
		if s, ok := res.(shortener.Success); ok && s.HasScheme() {
			succeeded++
			b.stats.RecordShortened(p, shortener.FlowBatch)
			lines = append(lines, fmt.Sprintf("%d. ✅ %s", i+1, s.URL))
			continue
		}
		lines = append(lines, fmt.Sprintf("%d. ❌ Gagal: %s", i+1, url))
	}

	b.edit(ctx, q.Message, batchReportText(p, lines, succeeded, len(batch.URLs)))
}
