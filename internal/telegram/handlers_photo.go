package telegram

import (
	"context"
	"fmt"
	"log"

	"github.com/Vovarama1992/file_converter/internal/format"
	"github.com/Vovarama1992/file_converter/internal/ports"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (app *BotApp) handlePhoto(
	ctx context.Context,
	bot *tgbotapi.BotAPI,
	msg *tgbotapi.Message,
	mainKB tgbotapi.ReplyKeyboardMarkup,
) {
	chatID := msg.Chat.ID
	req := parseCaption(msg.Caption)

	//--------------------------------------------------------
	// ОПРЕДЕЛЯЕМ ФАЙЛ
	//--------------------------------------------------------
	var fileID, filename string
	var size int

	if msg.Document != nil {
		d := msg.Document
		fileID = d.FileID
		filename = d.FileName
		size = d.FileSize

		log.Printf("[document] chat=%d file=%s mime=%s", chatID, filename, d.MimeType)
	} else {
		// самое крупное превью
		p := msg.Photo[len(msg.Photo)-1]
		fileID = p.FileID
		filename = fmt.Sprintf("photo_%d.jpg", msg.MessageID)
		size = p.FileSize

		log.Printf("[photo] chat=%d file=%s size=%dx%d", chatID, p.FileID, p.Width, p.Height)
	}

	//--------------------------------------------------------
	// 1. Скачиваем
	//--------------------------------------------------------
	data, err := app.download(ctx, bot, fileID, size)
	if err != nil {
		log.Printf("[photo] download ERROR: %v", err)
		app.reply(bot, chatID, "⚠️ Не удалось получить файл: "+err.Error(), mainKB)
		return
	}

	in := ports.InputArtifact{FileName: filename, Kind: ports.KindImage, Bytes: data}

	//--------------------------------------------------------
	// 2. В альбом для PDF
	//--------------------------------------------------------
	if req.ToPDF {
		if _, err := format.Detect(data); err != nil {
			app.reply(bot, chatID, "⚠️ Это не картинка: "+err.Error(), mainKB)
			return
		}
		n, err := app.albums.Add(chatID, in)
		if err != nil {
			log.Printf("[album] chat=%d full at %d images", chatID, n)
			app.reply(bot, chatID, fmt.Sprintf("⚠️ Очередь PDF заполнена (%d картинок). Нажми «%s».", n, btnBuildPDF), mainKB)
			return
		}
		app.reply(bot, chatID, fmt.Sprintf("🖼 Добавлено в PDF: %d. Нажми «%s», когда закончишь.", n, btnBuildPDF), mainKB)
		return
	}

	//--------------------------------------------------------
	// 3. Конвертация
	//--------------------------------------------------------
	from, _ := format.Detect(data)

	out, err := app.TranscodeService.Convert(in, req.Format, req.Quality)
	if err != nil {
		log.Printf("[photo] CONVERT ERROR: %v", err)
		app.reply(bot, chatID, "⚠️ Ошибка конвертации: "+err.Error(), mainKB)
		return
	}

	//--------------------------------------------------------
	// 4. История и ответ
	//--------------------------------------------------------
	app.addHistory(chatID, func(s string) (ports.Record, error) {
		return app.RecordService.AddImageFormat(ctx, s, from.String(), req.Format.String())
	})
	app.sendArtifact(ctx, bot, chatID, out, fmt.Sprintf("✅ %s → %s", from, req.Format), mainKB)

	log.Printf("[photo/document] done chat=%d → %s", chatID, out.FileName)
}
