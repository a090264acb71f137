package assemble

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

var disableConfigDir sync.Once

type PdfcpuWriter struct {
	conf *model.Configuration
}

func NewPdfcpuWriter() *PdfcpuWriter {
	// pdfcpu не должен создавать ~/.config/pdfcpu
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PdfcpuWriter{conf: conf}
}

// WritePDF принимает PNG/JPEG страницы; размер страницы = размер изображения
func (w *PdfcpuWriter) WritePDF(ctx context.Context, pages [][]byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	readers := make([]io.Reader, len(pages))
	for i, p := range pages {
		readers[i] = bytes.NewReader(p)
	}

	imp := pdfcpu.DefaultImportConfig()
	imp.Pos = types.Full

	var buf bytes.Buffer
	if err := api.ImportImages(nil, &buf, readers, imp, w.conf); err != nil {
		return nil, fmt.Errorf("pdfcpu import: %w", err)
	}
	return buf.Bytes(), nil
}
