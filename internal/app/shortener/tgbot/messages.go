package tgbot

import (
	"fmt"
	"strings"

	"shortbot.local/internal/app/shortener"
	"shortbot.local/internal/app/shortener/stats"
)

// 面向用户的文案统一放在这里，保持印尼语原文

const msgStart = "🤖 URL Shortener Bot\n\n" +
	"Kirim URL yang ingin dipendekkan:\n" +
	"• google.com\n" +
	"• https://example.com\n" +
	"• http://website.com\n\n" +
	"🎯 Fitur:\n" +
	"• /custom - Custom alias\n" +
	"• /batch - Shorten 5 URL sekaligus\n\n" +
	"📋 Gunakan /help untuk melihat semua command"

const msgHelp = `📚 Daftar Command Bot

🔹 /start - Memulai bot dan menampilkan pesan selamat datang
🔹 /help - Menampilkan pesan bantuan ini
🔹 /stats - Menampilkan statistik penggunaan bot
🔹 /providers - Menampilkan daftar provider URL shortener
🔹 /about - Tentang bot ini dan developer
🔹 /ping - Cek status dan respon time bot
🔹 /custom - Buat shortlink dengan custom alias
🔹 /batch - Shorten 5 URL sekaligus

💡 Cara Penggunaan:
1. Kirim URL langsung ke bot
2. Atau gunakan /custom <url> <alias> untuk custom shortlink
3. Atau gunakan /batch untuk multiple URLs
4. Pilih provider yang diinginkan
5. Dapatkan URL pendek!

🔗 Contoh URL:
• google.com
• https://github.com
• http://example.com

🎯 Custom Alias:
• /custom google.com mysearch
• /custom https://github.com rirozo_github

📦 Batch URLs:
• /batch lalu kirim 5 URL (dipisah newline)`

const msgProviders = `🛠 Daftar Provider URL Shortener

✅ Support Custom Alias:
🔹 (is.gd) - Minimalis, tanpa iklan dan analytics
🔹 (v.gd) - Versi custom dari is.gd

🔹 Semua Provider:
🔹 (clck.ru) - Provider Rusia, cepat dan andal
🔹 (da.gd) - Simple dan clean, tanpa tracking
🔹 (osdb.link) - Open Source database link shortener
🔹 (is.gd) - Minimalis, tanpa iklan & analytics
🔹 (v.gd) - Versi custom dari is.gd
🔹 (tinyurl.com) - Legacy, terpercaya sejak 2002

⭐ Custom Alias: Gunakan is.gd atau v.gd
🎯 Format Alias: huruf, angka, underscore (_)
📦 Batch: Support semua provider`

const msgAbout = `🤖 Tentang URL Shortener Bot

📝 Deskripsi:
Bot Telegram untuk memendekkan URL dengan berbagai provider gratis.
Mendukung 6 provider terbaik dengan hasil instan.

⚡ Fitur:
• 6 Provider URL Shortener
• Custom Alias Support
• Batch URL Shortening (5 URLs)
• Pilihan Provider untuk Custom Link
• Proses Cepat & Real-time
• Interface User-friendly
• Gratis 100%

👨‍💻 Developer: SEO RIROZO

🆘 Butuh Bantuan? Gunakan /help`

const (
	msgPong           = "🏓 Pong!"
	msgUnknownCommand = "❓ Command tidak dikenal. Gunakan /help untuk melihat semua command."
	msgInvalidURL     = "❌ Format URL tidak valid. Pastikan URL mengandung domain (contoh: google.com)"
	msgChooseProvider = "Pilih shortener:"
	msgURLNotFound    = "❌ URL tidak ditemukan. Kirim URL lagi."
	msgBadProvider    = "❌ Provider tidak valid."
)

const msgCustomUsage = "❌ Format: /custom <url> <alias>\n\n" +
	"📝 Contoh:\n" +
	"• /custom https://google.com mysearch\n" +
	"• /custom google.com rirozo_page\n" +
	"• /custom example.com my_page123\n\n" +
	"📋 Aturan alias:\n" +
	"• Hanya huruf, angka, underscore (_)\n" +
	"• Minimal 3 karakter\n" +
	"• Tidak boleh spasi atau karakter khusus\n" +
	"• Auto convert ke lowercase"

const msgAliasTooShort = "❌ Alias terlalu pendek. Minimal 3 karakter."

const msgAliasInvalid = "❌ Format alias tidak valid.\n" +
	"Hanya boleh menggunakan:\n" +
	"• Huruf kecil (a-z)\n" +
	"• Angka (0-9)\n" +
	"• Underscore (_)\n\n" +
	"✅ Contoh: my_page, link123, rirozo_site\n" +
	"❌ Contoh: my-page, MyPage, link@123"

const msgCustomNotFound = "❌ Data custom alias tidak ditemukan. Gunakan /custom lagi."

const msgCustomMoreInfo = "ℹ️ Provider Support Custom Alias:\n\n" +
	"✅ is.gd - Recommended\n" +
	"• Format: https://is.gd/alias_anda\n" +
	"• Minimalis & cepat\n" +
	"• Tanpa iklan & analytics\n\n" +
	"✅ v.gd - Alternative\n" +
	"• Format: https://v.gd/alias_anda\n" +
	"• Sama seperti is.gd\n" +
	"• Backup option\n\n" +
	"❌ Provider lain tidak support custom alias\n" +
	"Gunakan /custom lagi untuk memilih provider."

const msgBatchIntro = "📦 Batch URL Shortening\n\n" +
	"Kirim 5 URL yang ingin dipendekkan (maksimal 5 URL):\n" +
	"• Pisahkan dengan newline/enter\n" +
	"• Boleh dengan atau tanpa http/https\n\n" +
	"📝 Contoh:\n" +
	"google.com\n" +
	"https://github.com\n" +
	"example.com\n" +
	"http://python.org\n" +
	"stackoverflow.com\n\n" +
	"⏳ Akan saya proses dengan provider pilihan Anda..."

const (
	msgBatchTooMany = "❌ Terlalu banyak URL. Maksimal 5 URL.\n" +
		"Silakan gunakan /batch lagi dan kirim maksimal 5 URL."
	msgBatchEmpty = "❌ Tidak ada URL yang valid.\n" +
		"Silakan gunakan /batch lagi dan kirim URL yang valid."
	msgBatchNoValid  = "❌ Tidak ada URL yang valid untuk diproses."
	msgBatchNotFound = "❌ Data batch tidak ditemukan. Gunakan /batch lagi."
)

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "• " + it
	}
	return strings.Join(lines, "\n")
}

func statsText(s stats.Snapshot) string {
	return fmt.Sprintf(`📊 Statistik Bot

👥 Total Pengguna: %d
🔗 URL Dipendekkan: %d
⏰ Uptime: %s
🔄 Provider Tersedia: %d
🎯 Fitur Custom: Tersedia
📦 Fitur Batch: Tersedia (%d URLs)

📈 Provider Paling Populer:
• clck.ru - Cepat & Andal
• tinyurl.com - Legacy & Terpercaya
• is.gd - Simple & Clean (Support Custom Alias)`,
		s.Users, s.Shortened, shortener.FormatUptime(s.Uptime), len(shortener.Providers()), shortener.MaxBatch)
}

func pingText(ms float64) string {
	return fmt.Sprintf("🏓 Pong!\n⏱ Response Time: `%.2fms`\n🟢 Status: Online", ms)
}

func singlePromptText(url string) string {
	return fmt.Sprintf("📝 URL: `%s`\n\n%s", url, msgChooseProvider)
}

func singleProgressText(p shortener.ProviderID) string {
	return fmt.Sprintf("⏳ Memendekkan dengan %s...", p.DisplayName())
}

func singleSuccessText(p shortener.ProviderID, short string) string {
	return fmt.Sprintf("✅ %s\n\n🔗 %s", p.DisplayName(), short)
}

func singleFailedText(p shortener.ProviderID) string {
	return fmt.Sprintf("❌ %s gagal atau sedang down.\nSilakan coba provider lain.", p.DisplayName())
}

func customPromptText(url, alias string) string {
	return fmt.Sprintf("🎯 Custom Alias: `%s`\n🔗 URL: `%s`\n\n"+
		"Pilih provider untuk custom alias:\n"+
		"• is.gd - Recommended\n"+
		"• v.gd - Alternative", alias, url)
}

func customProgressText(p shortener.ProviderID) string {
	return fmt.Sprintf("⏳ Membuat custom link dengan %s...", p.DisplayName())
}

func customSuccessText(p shortener.ProviderID, short, alias string) string {
	return fmt.Sprintf("✅ Custom Alias Berhasil!\n\n"+
		"🔗 %s\n"+
		"📝 Alias: %s\n"+
		"🛠 Provider: %s\n\n"+
		"💡 Tips: Copy link di atas untuk share!", short, alias, p.DisplayName())
}

func customConflictText(p shortener.ProviderID, alias string) string {
	return fmt.Sprintf("❌ Alias '%s' sudah dipakai di %s.\n\n"+
		"💡 Coba:\n"+
		"• Pilih provider lain\n"+
		"• Ganti alias: %s2, my_%s\n"+
		"• Gunakan /custom lagi", alias, p.DisplayName(), alias, alias)
}

func customProviderErrorText(p shortener.ProviderID, message string) string {
	return fmt.Sprintf("❌ Error dengan %s:\n%s\n\n💡 Coba provider lain atau ganti alias.", p.DisplayName(), message)
}

func customFailedText(p shortener.ProviderID) string {
	return fmt.Sprintf("❌ %s gagal membuat custom alias.\n"+
		"Silakan coba provider lain atau gunakan provider biasa.", p.DisplayName())
}

func batchInvalidText(invalid []string) string {
	return fmt.Sprintf("❌ %d URL tidak valid:\n%s\n\nHanya URL valid yang akan diproses.",
		len(invalid), bulletList(invalid))
}

func batchPromptText(urls []string) string {
	return fmt.Sprintf("📦 Batch URLs (%d URL):\n%s\n\nPilih provider untuk semua URL:", len(urls), bulletList(urls))
}

func batchProgressText(n int, p shortener.ProviderID) string {
	return fmt.Sprintf("⏳ Memendekkan %d URL dengan %s...", n, p.DisplayName())
}

// batchReportText lines 已按输入顺序编号
func batchReportText(p shortener.ProviderID, lines []string, ok, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📦 Hasil Batch Shortening (%s)\n\n", p.DisplayName())
	b.WriteString(strings.Join(lines, "\n"))
	fmt.Fprintf(&b, "\n\n📊 Statistik: %d/%d berhasil", ok, total)
	if ok < total {
		b.WriteString("\n💡 Beberapa URL gagal, coba provider lain.")
	}
	return b.String()
}
