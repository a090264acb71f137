package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Vovarama1992/file_converter/internal/ports"
	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// runBotLoop: главный цикл получения апдейтов
func (app *BotApp) runBotLoop(ctx context.Context, bot *tgbotapi.BotAPI) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := bot.GetUpdatesChan(u)
	log.Printf("[bot_loop] started username=@%s", bot.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			bot.StopReceivingUpdates()
			log.Printf("[bot_loop] stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			app.handleMessage(ctx, bot, update.Message)
		}
	}
}

func (app *BotApp) handleMessage(
	ctx context.Context,
	bot *tgbotapi.BotAPI,
	msg *tgbotapi.Message,
) {
	chatID := msg.Chat.ID
	mainKB := app.BuildMainKeyboard()
	textLower := strings.ToLower(msg.Text)

	// =====================================================
	// КОМАНДЫ
	// =====================================================
	switch {
	case msg.IsCommand() && msg.Command() == "start",
		strings.Contains(textLower, "помощ"):
		m := tgbotapi.NewMessage(chatID, helpText)
		m.ReplyMarkup = mainKB
		bot.Send(m)
		return

	case strings.Contains(textLower, "собрать"):
		app.handleBuildPDF(ctx, bot, msg, mainKB)
		return

	case strings.Contains(textLower, "очист"):
		app.albums.Take(chatID)
		if err := app.RecordService.DeleteHistory(ctx, session(chatID)); err != nil {
			log.Printf("[history] clear fail chat=%d: %v", chatID, err)
		}
		m := tgbotapi.NewMessage(chatID, "История очищена.")
		m.ReplyMarkup = mainKB
		bot.Send(m)
		return

	case strings.Contains(textLower, "истори"):
		app.handleHistory(ctx, bot, msg, mainKB)
		return
	}

	// =====================================================
	// ФАЙЛЫ
	// =====================================================
	switch {
	case msg.Document != nil && isPDF(msg.Document):
		app.handlePDF(ctx, bot, msg, mainKB)
	case msg.Document != nil, len(msg.Photo) > 0:
		app.handlePhoto(ctx, bot, msg, mainKB)
	default:
		m := tgbotapi.NewMessage(chatID, "📎 Пришли PDF или картинку. Подробности: «❓ Помощь».")
		m.ReplyMarkup = mainKB
		bot.Send(m)
	}
}

// session: у каждого чата своя история
func session(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}

// addHistory пишет запись после успешной конвертации; ошибка истории не ломает ответ
func (app *BotApp) addHistory(chatID int64, add func(session string) (ports.Record, error)) {
	if _, err := add(session(chatID)); err != nil {
		log.Printf("[history] append fail chat=%d: %v", chatID, err)
	}
}

// download тянет файл с серверов телеграма, не больше limit байт
func (app *BotApp) download(ctx context.Context, bot *tgbotapi.BotAPI, fileID string, size int) ([]byte, error) {
	if app.MaxUpload > 0 && int64(size) > app.MaxUpload {
		return nil, fmt.Errorf("file is %s, limit %s",
			humanize.Bytes(uint64(size)), humanize.Bytes(uint64(app.MaxUpload)))
	}

	fileInfo, err := bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileInfo.Link(bot.Token), nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: status %d", resp.StatusCode)
	}

	var r io.Reader = resp.Body
	if app.MaxUpload > 0 {
		r = io.LimitReader(resp.Body, app.MaxUpload+1)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if app.MaxUpload > 0 && int64(len(b)) > app.MaxUpload {
		return nil, fmt.Errorf("file exceeds %s", humanize.Bytes(uint64(app.MaxUpload)))
	}
	return b, nil
}

// sendArtifact отдаёт файл документом и зеркалит его в S3, если он настроен
func (app *BotApp) sendArtifact(
	ctx context.Context,
	bot *tgbotapi.BotAPI,
	chatID int64,
	a ports.OutputArtifact,
	caption string,
	mainKB tgbotapi.ReplyKeyboardMarkup,
) {
	if app.S3Service != nil {
		if _, err := app.S3Service.SaveArtifact(ctx, session(chatID), a); err != nil {
			log.Printf("[bot] S3 ERROR %s: %v", a.FileName, err)
			if app.ErrorNotify != nil {
				_ = app.ErrorNotify.Notify(ctx, "s3", err, fmt.Sprintf("chat=%d file=%s", chatID, a.FileName))
			}
		}
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: a.FileName, Bytes: a.Bytes})
	doc.Caption = caption
	doc.ReplyMarkup = mainKB
	if _, err := bot.Send(doc); err != nil {
		log.Printf("[bot] send document fail chat=%d file=%s: %v", chatID, a.FileName, err)
	}
}

func (app *BotApp) reply(bot *tgbotapi.BotAPI, chatID int64, text string, mainKB tgbotapi.ReplyKeyboardMarkup) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = mainKB
	bot.Send(m)
}

func isPDF(doc *tgbotapi.Document) bool {
	name := strings.ToLower(doc.FileName)
	return strings.HasSuffix(name, ".pdf") || doc.MimeType == "application/pdf"
}
