package assemble

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/file_converter/internal/domain"
	"github.com/Vovarama1992/file_converter/internal/format"
	"github.com/Vovarama1992/file_converter/internal/ports"
)

const (
	OutputName = "converted.pdf"
	MimeType   = "application/pdf"
)

type Service struct {
	writer PDFWriter
}

func NewService(w PDFWriter) *Service {
	return &Service{writer: w}
}

// Convert собирает PDF из изображений в порядке загрузки.
// Любая ошибка декодирования отменяет весь документ.
func (s *Service) Convert(ctx context.Context, inputs []ports.InputArtifact) (ports.OutputArtifact, error) {
	if len(inputs) == 0 {
		return ports.OutputArtifact{}, domain.ErrEmptyInput
	}

	pages := make([][]byte, len(inputs))
	for i, in := range inputs {
		img, _, err := format.Decode(in.Bytes)
		if err != nil {
			return ports.OutputArtifact{}, fmt.Errorf("image %d (%s): %w", i+1, in.FileName, err)
		}

		// PDF страницы без альфы: RGB
		b, err := format.EncodeBytes(format.ToRGB(img), format.PNG, format.EncodeOptions{})
		if err != nil {
			return ports.OutputArtifact{}, fmt.Errorf("image %d (%s): %w", i+1, in.FileName, err)
		}
		pages[i] = b
	}

	data, err := s.writer.WritePDF(ctx, pages)
	if err != nil {
		return ports.OutputArtifact{}, fmt.Errorf("%w: %w", domain.ErrEncode, err)
	}

	return ports.OutputArtifact{
		FileName: OutputName,
		Bytes:    data,
		MimeType: MimeType,
	}, nil
}
