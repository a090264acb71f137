package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Vovarama1992/file_converter/internal/ports"
	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleBuildPDF собирает PDF из картинок, накопленных в чате
func (app *BotApp) handleBuildPDF(
	ctx context.Context,
	bot *tgbotapi.BotAPI,
	msg *tgbotapi.Message,
	mainKB tgbotapi.ReplyKeyboardMarkup,
) {
	chatID := msg.Chat.ID
	inputs := app.albums.Take(chatID)

	log.Printf("[build_pdf] start chat=%d images=%d", chatID, len(inputs))

	if len(inputs) == 0 {
		app.reply(bot, chatID, "🖼 Сначала пришли картинки с подписью \"pdf\".", mainKB)
		return
	}

	out, err := app.AssembleService.Convert(ctx, inputs)
	if err != nil {
		log.Printf("[build_pdf] fail chat=%d: %v", chatID, err)
		app.reply(bot, chatID, "⚠️ Не удалось собрать PDF: "+err.Error(), mainKB)
		return
	}

	app.addHistory(chatID, func(s string) (ports.Record, error) {
		return app.RecordService.AddImagesToPDF(ctx, s, len(inputs))
	})
	app.sendArtifact(ctx, bot, chatID, out,
		fmt.Sprintf("✅ Страниц: %d, %s", len(inputs), humanize.Bytes(uint64(len(out.Bytes)))), mainKB)

	log.Printf("[build_pdf] done chat=%d", chatID)
}

func (app *BotApp) handleHistory(
	ctx context.Context,
	bot *tgbotapi.BotAPI,
	msg *tgbotapi.Message,
	mainKB tgbotapi.ReplyKeyboardMarkup,
) {
	chatID := msg.Chat.ID

	history, err := app.RecordService.GetHistory(ctx, session(chatID))
	if err != nil {
		log.Printf("[history] fail chat=%d: %v", chatID, err)
		app.reply(bot, chatID, "⚠️ История недоступна.", mainKB)
		return
	}

	app.reply(bot, chatID, formatHistory(history), mainKB)
}

// formatHistory: новые сверху, как их отдаёт RecordService
func formatHistory(history []ports.Record) string {
	if len(history) == 0 {
		return "История пуста. Начни конвертировать файлы!"
	}

	var b strings.Builder
	b.WriteString("📊 История конвертаций\n")
	for _, r := range history {
		fmt.Fprintf(&b, "\n%s\nInput: %s\nOutput: %s\n", r.Type, r.Input, r.Output)
	}
	return b.String()
}
