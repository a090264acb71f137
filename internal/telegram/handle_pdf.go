package telegram

import (
	"context"
	"fmt"
	"log"

	"github.com/Vovarama1992/file_converter/internal/archive"
	"github.com/Vovarama1992/file_converter/internal/ports"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (app *BotApp) handlePDF(
	ctx context.Context,
	bot *tgbotapi.BotAPI,
	msg *tgbotapi.Message,
	mainKB tgbotapi.ReplyKeyboardMarkup,
) {
	chatID := msg.Chat.ID
	d := msg.Document
	req := parseCaption(msg.Caption)

	log.Printf("[pdf] START chat=%d filename=%s format=%s", chatID, d.FileName, req.Format)

	// 1. TG FILE
	data, err := app.download(ctx, bot, d.FileID, d.FileSize)
	if err != nil {
		log.Printf("[pdf] download ERROR: %v", err)
		app.reply(bot, chatID, "⚠️ Не удалось получить PDF: "+err.Error(), mainKB)
		return
	}

	// 2. PDF → IMAGES
	pages, err := app.PDFService.Convert(ctx, data, req.Format)
	if err != nil {
		log.Printf("[pdf] CONVERT ERROR: %v", err)
		app.reply(bot, chatID, "⚠️ Ошибка обработки PDF: "+err.Error(), mainKB)
		return
	}
	log.Printf("[pdf] pages generated: %d", len(pages))

	// 3. одна страница: картинкой, несколько, архивом
	out := pages[0]
	if len(pages) > 1 {
		out, err = archive.Package(pages)
		if err != nil {
			log.Printf("[pdf] ZIP ERROR: %v", err)
			app.reply(bot, chatID, "⚠️ Не удалось упаковать страницы.", mainKB)
			return
		}
	}

	// 4. История
	app.addHistory(chatID, func(s string) (ports.Record, error) {
		return app.RecordService.AddPDFToImages(ctx, s, d.FileName, len(pages))
	})

	app.sendArtifact(ctx, bot, chatID, out, fmt.Sprintf("✅ Страниц: %d", len(pages)), mainKB)

	log.Printf("[pdf] DONE chat=%d", chatID)
}
