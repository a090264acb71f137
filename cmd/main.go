package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/file_converter/internal/assemble"
	"github.com/Vovarama1992/file_converter/internal/config"
	"github.com/Vovarama1992/file_converter/internal/delivery"
	"github.com/Vovarama1992/file_converter/internal/domain"
	"github.com/Vovarama1992/file_converter/internal/error_notificator"
	"github.com/Vovarama1992/file_converter/internal/format"
	"github.com/Vovarama1992/file_converter/internal/infra"
	"github.com/Vovarama1992/file_converter/internal/pdf"
	"github.com/Vovarama1992/file_converter/internal/ports"
	"github.com/Vovarama1992/file_converter/internal/telegram"
	"github.com/Vovarama1992/file_converter/internal/transcode"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / CONFIG
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	var renderer pdf.PageRenderer
	switch cfg.RenderBackend {
	case config.BackendPoppler:
		poppler := pdf.NewPopplerPDFConverter(cfg.RenderDPI)
		if !poppler.Available() {
			log.Fatalf("RENDER_BACKEND=poppler but pdftoppm is not in PATH")
		}
		renderer = poppler
	default:
		renderer = pdf.NewFitzPDFConverter(cfg.RenderDPI)
	}

	// S3 необязателен: без него артефакты только отдаются клиенту
	var s3Service ports.S3Service
	if cfg.S3.Enabled() {
		s3Client, err := infra.NewS3Client(cfg.S3)
		if err != nil {
			log.Fatalf("failed to init s3: %v", err)
		}
		s3Service = domain.NewS3Service(s3Client)
	}

	// =========================================================================
	// REPOSITORIES
	// =========================================================================

	recordRepo := infra.NewRecordRepo()

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	errInfra := error_notificator.NewInfra(nil, cfg.AdminChatID)
	errService := error_notificator.NewService(errInfra, zl)

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	encodeOpts := format.EncodeOptions{Quality: cfg.JPEGQuality}

	pdfService := pdf.NewPDFService(renderer, encodeOpts)
	assembleService := assemble.NewService(assemble.NewPdfcpuWriter())
	transcodeService := transcode.NewService(encodeOpts)
	recordService := domain.NewRecordService(recordRepo)

	// =========================================================================
	// TELEGRAM BOT
	// =========================================================================

	if cfg.TelegramToken != "" {
		botApp := &telegram.BotApp{
			PDFService:       pdfService,
			AssembleService:  assembleService,
			TranscodeService: transcodeService,
			RecordService:    recordService,
			S3Service:        s3Service,
			ErrorNotify:      errService,
			MaxUpload:        cfg.MaxUpload,
		}

		bot, err := botApp.InitBot(ctx, cfg.TelegramToken)
		if err != nil {
			log.Fatalf("failed to init telegram bot: %v", err)
		}

		errInfra.SetBot(bot)
	}

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Page-Count", "X-Artifact-URL"},
		AllowCredentials: false,
	}))

	// HANDLERS
	convertHandler := delivery.NewConvertHandler(
		pdfService,
		assembleService,
		transcodeService,
		recordService,
		s3Service,
		errService,
		zl,
		cfg.MaxUpload,
	)
	historyHandler := delivery.NewHistoryHandler(recordService, zl)

	// ROUTES
	delivery.RegisterRoutes(
		r,
		convertHandler,
		historyHandler,
		cfg.RateLimitPerMin,
	)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	// =========================================================================
	// BACKGROUND JOBS
	// =========================================================================

	if cfg.HistoryTTL > 0 {
		go func() {
			ticker := time.NewTicker(cfg.HistoryTTL / 4)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					n, err := recordService.CleanupIdle(ctx, cfg.HistoryTTL)
					if err != nil {
						log.Printf("[cleanup-history] error: %v", err)
					} else if n > 0 {
						log.Printf("[cleanup-history] removed %d idle sessions", n)
					}
				}
			}
		}()
	}

	// =========================================================================
	// START SERVER
	// =========================================================================

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + srv.Addr + ", backend=" + cfg.RenderBackend + ", max upload " + humanize.Bytes(uint64(cfg.MaxUpload)),
		Service: "file_converter",
	})

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
