package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const (
	btnBuildPDF = "📄 Собрать PDF"
	btnHistory  = "📊 История"
	btnClear    = "🗑 Очистить историю"
	btnHelp     = "❓ Помощь"
)

func (app *BotApp) BuildMainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	row1 := tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnBuildPDF),
	)

	row2 := tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnHistory),
		tgbotapi.NewKeyboardButton(btnClear),
	)

	row3 := tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnHelp),
	)

	kb := tgbotapi.NewReplyKeyboard(row1, row2, row3)
	kb.ResizeKeyboard = true
	return kb
}

const helpText = `Я конвертирую файлы.

📄 PDF → картинки: пришли PDF документом, в подписи формат (png, jpeg, webp, bmp).
🎨 Картинка → другой формат: пришли файл или фото, в подписи формат (png, jpg, webp, bmp, gif) и при желании качество 1..100.
🖼 Картинки → PDF: присылай картинки с подписью "pdf", потом нажми «📄 Собрать PDF».`
