package tgbot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	oteltrace "go.opentelemetry.io/otel/trace"

	"shortbot.local/internal/app/shortener"
	"shortbot.local/internal/platform/trace"
)

// intakeSingle 普通文本当作单个 URL，记下来后给出服务商选择
func (b *Bot) intakeSingle(ctx context.Context, m *tgbotapi.Message) {
	text := strings.TrimSpace(m.Text)
	if err := shortener.ValidateURL(text); err != nil {
		b.reply(ctx, m.Chat.ID, msgInvalidURL)
		return
	}
	url := shortener.NormalizeURL(text)
	b.store.SetSingle(m.From.ID, url)
	b.replyMarkdown(ctx, m.Chat.ID, singlePromptText(url), providerKeyboard(""))
}

func (b *Bot) completeSingle(ctx context.Context, q *tgbotapi.CallbackQuery, p shortener.ProviderID) {
	uid := q.From.ID
	url, ok := b.store.Single(uid)
	if !ok {
		b.edit(ctx, q.Message, msgURLNotFound)
		return
	}
	defer b.store.DeleteSingle(uid)

	markFlow(ctx, p, shortener.FlowSingle)
	b.edit(ctx, q.Message, singleProgressText(p))

	switch r := b.shortener.Shorten(ctx, url, p, "").(type) {
	case shortener.Success:
		b.stats.RecordShortened(p, shortener.FlowSingle)
		b.edit(ctx, q.Message, singleSuccessText(p, r.Display()))
	default:
		b.edit(ctx, q.Message, singleFailedText(p))
	}
}

func markFlow(ctx context.Context, p shortener.ProviderID, flow shortener.Flow) {
	oteltrace.SpanFromContext(ctx).SetAttributes(
		trace.AttrProvider.String(string(p)),
		trace.AttrFlow.String(string(flow)),
	)
}
