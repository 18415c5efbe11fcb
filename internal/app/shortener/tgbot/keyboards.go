package tgbot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"shortbot.local/internal/app/shortener"
)

// callback data 前缀：没有前缀的是单链流程，值就是 ProviderID
const (
	batchPrefix    = "batch_"
	customPrefix   = "custom_"
	customMoreInfo = customPrefix + "more_info"
)

// providerKeyboard 六个服务商，两列；prefix 区分单链和批量
func providerKeyboard(prefix string) tgbotapi.InlineKeyboardMarkup {
	ps := shortener.Providers()
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, (len(ps)+1)/2)
	for i := 0; i < len(ps); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{providerButton(prefix, ps[i])}
		if i+1 < len(ps) {
			row = append(row, providerButton(prefix, ps[i+1]))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// customKeyboard 只给支持别名的服务商，外加一个说明按钮
func customKeyboard() tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, p := range shortener.AliasProviders() {
		row = append(row, providerButton(customPrefix, p))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(row...),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Lihat Provider Lain", customMoreInfo),
		),
	)
}

func providerButton(prefix string, p shortener.ProviderID) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData("🔗 "+p.DisplayName(), prefix+string(p))
}

// parseCallbackProvider 去掉前缀后解析服务商
func parseCallbackProvider(data, prefix string) (shortener.ProviderID, bool) {
	if !strings.HasPrefix(data, prefix) {
		return "", false
	}
	return shortener.ParseProvider(strings.TrimPrefix(data, prefix))
}
