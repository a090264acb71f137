package format

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"github.com/Vovarama1992/file_converter/internal/domain"
	"golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const DefaultQuality = jpeg.DefaultQuality

type EncodeOptions struct {
	// Quality: только для JPEG, 1..100; 0 значит DefaultQuality
	Quality int
}

func (o EncodeOptions) quality() int {
	switch {
	case o.Quality <= 0:
		return DefaultQuality
	case o.Quality > 100:
		return 100
	}
	return o.Quality
}

// Decode распознаёт PNG, JPEG, GIF, BMP и WEBP по сигнатуре
func Decode(data []byte) (image.Image, Format, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty input", domain.ErrDecode)
	}
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}
	f, err := ParseFormat(name)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}
	return img, f, nil
}

// Detect читает только заголовок: формат без декодирования пикселей
func Detect(data []byte) (Format, error) {
	_, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}
	f, err := ParseFormat(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}
	return f, nil
}

func Encode(w io.Writer, img image.Image, f Format, opts EncodeOptions) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case JPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: opts.quality()})
	case WEBP:
		err = nativewebp.Encode(w, img, &nativewebp.Options{})
	case BMP:
		err = bmp.Encode(w, img)
	case GIF:
		err = gif.Encode(w, img, nil)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, f)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrEncode, f, err)
	}
	return nil
}

// EncodeBytes: Encode в память; на ошибке не возвращает частичных данных
func EncodeBytes(img image.Image, f Format, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
