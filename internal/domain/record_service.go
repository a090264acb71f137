package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/Vovarama1992/file_converter/internal/ports"
	"github.com/rs/xid"
)

type recordService struct {
	repo ports.RecordRepo
	now  func() time.Time
}

func NewRecordService(repo ports.RecordRepo) ports.RecordService {
	return &recordService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *recordService) add(ctx context.Context, session, typ, input, output string) (ports.Record, error) {
	if session == "" {
		return ports.Record{}, fmt.Errorf("session required")
	}
	rec := ports.Record{
		ID:        xid.New().String(),
		Type:      typ,
		Input:     input,
		Output:    output,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Append(ctx, session, rec); err != nil {
		return ports.Record{}, err
	}
	return rec, nil
}

func (s *recordService) AddPDFToImages(ctx context.Context, session, fileName string, pages int) (ports.Record, error) {
	return s.add(ctx, session, ports.RecordPDFToImages, fileName, fmt.Sprintf("%d images", pages))
}

func (s *recordService) AddImagesToPDF(ctx context.Context, session string, images int) (ports.Record, error) {
	return s.add(ctx, session, ports.RecordImagesToPDF, fmt.Sprintf("%d images", images), "PDF file")
}

func (s *recordService) AddImageFormat(ctx context.Context, session, from, to string) (ports.Record, error) {
	return s.add(ctx, session, ports.RecordImageFormat, from+" image", to+" image")
}

func (s *recordService) GetHistory(ctx context.Context, session string) ([]ports.Record, error) {
	records, err := s.repo.List(ctx, session)
	if err != nil {
		return nil, err
	}
	out := make([]ports.Record, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out, nil
}

func (s *recordService) DeleteHistory(ctx context.Context, session string) error {
	return s.repo.Clear(ctx, session)
}

func (s *recordService) CleanupIdle(ctx context.Context, idle time.Duration) (int, error) {
	if idle <= 0 {
		return 0, nil
	}
	return s.repo.DeleteIdle(ctx, idle)
}
