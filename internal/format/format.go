package format

import (
	"fmt"
	"strings"

	"github.com/Vovarama1992/file_converter/internal/domain"
)

type Format string

const (
	PNG  Format = "PNG"
	JPEG Format = "JPEG"
	WEBP Format = "WEBP"
	BMP  Format = "BMP"
	GIF  Format = "GIF"
)

// All: порядок как в выпадающем списке
var All = []Format{PNG, JPEG, WEBP, BMP, GIF}

// ParseFormat принимает имя в любом регистре, JPG: синоним JPEG
func ParseFormat(s string) (Format, error) {
	name := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if name == "JPG" {
		return JPEG, nil
	}
	for _, f := range All {
		if Format(name) == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, s)
}

func (f Format) String() string { return string(f) }

// Extension: расширение без точки; JPEG всегда пишется как .jpg
func (f Format) Extension() string {
	if f == JPEG {
		return "jpg"
	}
	return strings.ToLower(string(f))
}

func (f Format) MimeType() string {
	return "image/" + strings.ToLower(string(f))
}

// SupportsAlpha: false только для JPEG
func (f Format) SupportsAlpha() bool {
	return f != JPEG
}
