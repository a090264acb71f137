package ports

import (
	"context"
	"time"
)

type RecordService interface {
	AddPDFToImages(ctx context.Context, session, fileName string, pages int) (Record, error)
	AddImagesToPDF(ctx context.Context, session string, images int) (Record, error)
	AddImageFormat(ctx context.Context, session, from, to string) (Record, error)

	// GetHistory: новые сверху
	GetHistory(ctx context.Context, session string) ([]Record, error)
	DeleteHistory(ctx context.Context, session string) error

	// CleanupIdle: фоновая чистка брошенных сессий
	CleanupIdle(ctx context.Context, idle time.Duration) (int, error)
}
