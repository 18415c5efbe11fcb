package tgbot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Commands 命令菜单，启动时注册到 Telegram
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Memulai bot"},
		{Command: "help", Description: "Daftar command"},
		{Command: "stats", Description: "Statistik penggunaan bot"},
		{Command: "providers", Description: "Daftar provider URL shortener"},
		{Command: "about", Description: "Tentang bot ini"},
		{Command: "ping", Description: "Cek status dan respon time"},
		{Command: "custom", Description: "Shortlink dengan custom alias"},
		{Command: "batch", Description: "Shorten 5 URL sekaligus"},
	}
}

func (b *Bot) handleCommand(ctx context.Context, m *tgbotapi.Message) {
	chatID := m.Chat.ID
	switch m.Command() {
	case "start":
		b.reply(ctx, chatID, msgStart)
	case "help":
		b.reply(ctx, chatID, msgHelp)
	case "stats":
		b.reply(ctx, chatID, statsText(b.stats.Snapshot(b.now())))
	case "providers":
		b.reply(ctx, chatID, msgProviders)
	case "about":
		msg := tgbotapi.NewMessage(chatID, msgAbout)
		msg.DisableWebPagePreview = true
		_, _ = b.send(ctx, msg)
	case "ping":
		b.ping(ctx, chatID)
	case "custom":
		b.cmdCustom(ctx, m)
	case "batch":
		b.cmdBatch(ctx, m)
	default:
		b.reply(ctx, chatID, msgUnknownCommand)
	}
}

// ping 发一条占位消息再改写，报告发送耗时
func (b *Bot) ping(ctx context.Context, chatID int64) {
	start := b.now()
	sent, err := b.send(ctx, tgbotapi.NewMessage(chatID, msgPong))
	if err != nil {
		return
	}
	ms := float64(b.now().Sub(start).Microseconds()) / 1000

	edit := tgbotapi.NewEditMessageText(chatID, sent.MessageID, pingText(ms))
	edit.ParseMode = tgbotapi.ModeMarkdown
	_, _ = b.send(ctx, edit)
}
