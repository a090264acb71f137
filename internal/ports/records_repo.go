package ports

import (
	"context"
	"time"
)

// Виды записей: как на вкладках конвертера
const (
	RecordPDFToImages = "PDF to Images"
	RecordImagesToPDF = "Images to PDF"
	RecordImageFormat = "Image Format"
)

// Record: запись истории конвертаций; пишется только после успеха
type Record struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	CreatedAt time.Time `json:"created_at"`
}

// Хранилище истории в памяти процесса, ключ: сессия
type RecordRepo interface {
	Append(ctx context.Context, session string, rec Record) error
	List(ctx context.Context, session string) ([]Record, error)
	Clear(ctx context.Context, session string) error
	DeleteIdle(ctx context.Context, idle time.Duration) (int, error)
}
