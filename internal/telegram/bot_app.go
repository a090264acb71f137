package telegram

import (
	"context"
	"log"

	"github.com/Vovarama1992/file_converter/internal/assemble"
	"github.com/Vovarama1992/file_converter/internal/error_notificator"
	"github.com/Vovarama1992/file_converter/internal/pdf"
	"github.com/Vovarama1992/file_converter/internal/ports"
	"github.com/Vovarama1992/file_converter/internal/transcode"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type BotApp struct {
	PDFService       *pdf.PDFService
	AssembleService  *assemble.Service
	TranscodeService *transcode.Service
	RecordService    ports.RecordService
	S3Service        ports.S3Service

	ErrorNotify error_notificator.Notificator
	MaxUpload   int64

	bot    *tgbotapi.BotAPI
	albums *albums
}

// InitBot поднимает бота и запускает цикл апдейтов в фоне
func (app *BotApp) InitBot(ctx context.Context, token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	app.bot = bot
	app.albums = newAlbums()
	log.Printf("[bot_app] ready: @%s", bot.Self.UserName)

	go app.runBotLoop(ctx, bot)

	return bot, nil
}

func (app *BotApp) GetBot() *tgbotapi.BotAPI {
	return app.bot
}
