package pdf

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/Vovarama1992/file_converter/internal/domain"
	"github.com/gen2brain/go-fitz"
)

// FitzPDFConverter рендерит страницы через MuPDF (go-fitz, нужен CGo)
type FitzPDFConverter struct {
	dpi float64
}

func NewFitzPDFConverter(dpi int) *FitzPDFConverter {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &FitzPDFConverter{dpi: float64(dpi)}
}

func (c *FitzPDFConverter) RenderPages(ctx context.Context, pdf []byte) ([]image.Image, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		if errors.Is(err, fitz.ErrNeedsPassword) {
			return nil, fmt.Errorf("%w: document is encrypted", domain.ErrDecode)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}
	defer doc.Close()

	n := doc.NumPage()
	if n == 0 {
		return nil, fmt.Errorf("%w: document has no pages", domain.ErrDecode)
	}

	pages := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := doc.ImageDPI(i, c.dpi)
		if err != nil {
			return nil, fmt.Errorf("%w: render page %d: %w", domain.ErrDecode, i+1, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}
