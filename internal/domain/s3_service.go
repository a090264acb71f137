package domain

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Vovarama1992/file_converter/internal/ports"
	"github.com/rs/xid"
)

type s3Service struct {
	client ports.S3Client
}

func NewS3Service(client ports.S3Client) ports.S3Service {
	return &s3Service{client: client}
}

// ObjectKey: путь в бакете: сессия/дата/id/имя
func (s *s3Service) ObjectKey(session, filename string) string {
	date := time.Now().Format("2006-01-02")
	clean := filepath.Base(filename)
	return fmt.Sprintf("%s/%s/%s/%s", session, date, xid.New().String(), clean)
}

func (s *s3Service) SaveArtifact(ctx context.Context, session string, a ports.OutputArtifact) (string, error) {
	if session == "" {
		return "", fmt.Errorf("session required")
	}

	key := s.ObjectKey(session, a.FileName)
	return s.client.PutObject(ctx, key, bytes.NewReader(a.Bytes), int64(len(a.Bytes)), a.MimeType)
}
