package transcode

import (
	"fmt"

	"github.com/Vovarama1992/file_converter/internal/format"
	"github.com/Vovarama1992/file_converter/internal/ports"
)

type Service struct {
	opts format.EncodeOptions
}

func NewService(opts format.EncodeOptions) *Service {
	return &Service{opts: opts}
}

// Convert перекодирует одно изображение. Для JPEG изображение с альфой
// сначала кладётся на белый фон. quality > 0 переопределяет значение сервиса.
func (s *Service) Convert(in ports.InputArtifact, target format.Format, quality int) (ports.OutputArtifact, error) {
	img, _, err := format.Decode(in.Bytes)
	if err != nil {
		return ports.OutputArtifact{}, fmt.Errorf("%s: %w", in.FileName, err)
	}

	if !target.SupportsAlpha() && format.HasAlpha(img) {
		img = format.Flatten(img)
	}

	opts := s.opts
	if quality > 0 {
		opts.Quality = quality
	}

	b, err := format.EncodeBytes(img, target, opts)
	if err != nil {
		return ports.OutputArtifact{}, fmt.Errorf("%s: %w", in.FileName, err)
	}

	return ports.OutputArtifact{
		FileName: OutputName(in, target),
		Bytes:    b,
		MimeType: target.MimeType(),
	}, nil
}

// OutputName: исходное имя без расширения + расширение цели
func OutputName(in ports.InputArtifact, target format.Format) string {
	return in.Stem() + "." + target.Extension()
}
