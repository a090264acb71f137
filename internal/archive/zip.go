package archive

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Vovarama1992/file_converter/internal/domain"
	"github.com/Vovarama1992/file_converter/internal/ports"
	"github.com/klauspost/compress/zip"
	"go.uber.org/multierr"
)

const (
	OutputName = "converted_images.zip"
	MimeType   = "application/zip"
)

// Package складывает артефакты в zip: по записи на файл, имена как есть,
// дубликаты не переименовываются
func Package(files []ports.OutputArtifact) (ports.OutputArtifact, error) {
	if len(files) == 0 {
		return ports.OutputArtifact{}, domain.ErrEmptyInput
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	now := time.Now()
	for _, f := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.FileName,
			Method:   zip.Deflate,
			Modified: now,
		})
		if err != nil {
			return ports.OutputArtifact{}, multierr.Append(
				fmt.Errorf("%w: zip entry %s: %w", domain.ErrEncode, f.FileName, err), zw.Close())
		}
		if _, err := w.Write(f.Bytes); err != nil {
			return ports.OutputArtifact{}, multierr.Append(
				fmt.Errorf("%w: zip entry %s: %w", domain.ErrEncode, f.FileName, err), zw.Close())
		}
	}

	if err := zw.Close(); err != nil {
		return ports.OutputArtifact{}, fmt.Errorf("%w: zip: %w", domain.ErrEncode, err)
	}

	return ports.OutputArtifact{
		FileName: OutputName,
		Bytes:    buf.Bytes(),
		MimeType: MimeType,
	}, nil
}
