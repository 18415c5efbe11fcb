package tgbot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"shortbot.local/internal/app/shortener"
	"shortbot.local/internal/app/shortener/session"
)

// cmdCustom /custom <url> <alias>
func (b *Bot) cmdCustom(ctx context.Context, m *tgbotapi.Message) {
	args := strings.Fields(m.CommandArguments())
	if len(args) != 2 {
		b.reply(ctx, m.Chat.ID, msgCustomUsage)
		return
	}

	url := shortener.NormalizeURL(args[0])
	alias, err := shortener.NormalizeAlias(args[1])
	switch {
	case errors.Is(err, shortener.ErrAliasTooShort):
		b.reply(ctx, m.Chat.ID, msgAliasTooShort)
		return
	case errors.Is(err, shortener.ErrAliasInvalid):
		b.reply(ctx, m.Chat.ID, msgAliasInvalid)
		return
	}

	b.store.SetCustom(m.From.ID, session.Custom{URL: url, Alias: alias})
	b.replyMarkdown(ctx, m.Chat.ID, customPromptText(url, alias), customKeyboard())
}

// completeCustom more_info 只展示说明，不动待处理的请求
func (b *Bot) completeCustom(ctx context.Context, q *tgbotapi.CallbackQuery) {
	if q.Data == customMoreInfo {
		b.edit(ctx, q.Message, msgCustomMoreInfo)
		return
	}
	p, ok := parseCallbackProvider(q.Data, customPrefix)
	if !ok || !p.SupportsAlias() {
		b.edit(ctx, q.Message, msgBadProvider)
		return
	}

	uid := q.From.ID
	pending, ok := b.store.Custom(uid)
	if !ok {
		b.edit(ctx, q.Message, msgCustomNotFound)
		return
	}
	defer b.store.DeleteCustom(uid)

	markFlow(ctx, p, shortener.FlowCustom)
	b.edit(ctx, q.Message, customProgressText(p))

	switch r := b.shortener.Shorten(ctx, pending.URL, p, pending.Alias).(type) {
	case shortener.Success:
		if !r.HasScheme() {
			b.edit(ctx, q.Message, customFailedText(p))
			return
		}
		b.stats.RecordShortened(p, shortener.FlowCustom)
		b.edit(ctx, q.Message, customSuccessText(p, r.URL, pending.Alias))
	case shortener.ProviderError:
		b.log(ctx).Info("provider rejected alias",
			zap.String("provider", string(p)),
			zap.Int("code", r.Code),
			zap.String("message", r.Message),
		)
		if r.IsAliasConflict() {
			b.edit(ctx, q.Message, customConflictText(p, pending.Alias))
			return
		}
		b.edit(ctx, q.Message, customProviderErrorText(p, r.Message))
	default:
		b.edit(ctx, q.Message, customFailedText(p))
	}
}
