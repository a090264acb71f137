package pdf

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/Vovarama1992/file_converter/internal/domain"
	"github.com/Vovarama1992/file_converter/internal/format"
	"github.com/Vovarama1992/file_converter/internal/ports"
	"golang.org/x/sync/errgroup"
)

// Formats: во что можно растеризовать страницы
var Formats = []format.Format{format.PNG, format.JPEG, format.WEBP, format.BMP}

type PDFService struct {
	conv    PageRenderer
	opts    format.EncodeOptions
	workers int
}

func NewPDFService(c PageRenderer, opts format.EncodeOptions) *PDFService {
	return &PDFService{conv: c, opts: opts, workers: runtime.GOMAXPROCS(0)}
}

// PageName: page_<n>.<формат в нижнем регистре>, n с единицы
func PageName(n int, f format.Format) string {
	return fmt.Sprintf("page_%d.%s", n, strings.ToLower(f.String()))
}

// Convert возвращает по артефакту на страницу либо ошибку без артефактов
func (s *PDFService) Convert(ctx context.Context, pdf []byte, f format.Format) ([]ports.OutputArtifact, error) {
	if !supported(f) {
		return nil, fmt.Errorf("%w: %s pages", domain.ErrUnsupportedFormat, f)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("%w: empty pdf", domain.ErrDecode)
	}

	pages, err := s.conv.RenderPages(ctx, pdf)
	if err != nil {
		if errors.Is(err, domain.ErrDecode) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no pages", domain.ErrDecode)
	}

	out := make([]ports.OutputArtifact, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, page := range pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img := page
			if f == format.JPEG {
				img = format.Flatten(img)
			}
			b, err := format.EncodeBytes(img, f, s.opts)
			if err != nil {
				return fmt.Errorf("page %d: %w", i+1, err)
			}
			out[i] = ports.OutputArtifact{
				FileName: PageName(i+1, f),
				Bytes:    b,
				MimeType: f.MimeType(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func supported(f format.Format) bool {
	for _, x := range Formats {
		if x == f {
			return true
		}
	}
	return false
}
