package format

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/Vovarama1992/file_converter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"png", PNG},
		{"PNG", PNG},
		{"jpeg", JPEG},
		{"JPG", JPEG},
		{".jpg", JPEG},
		{" webp ", WEBP},
		{"Bmp", BMP},
		{"gif", GIF},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormat("tiff")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestExtensionAndMime(t *testing.T) {
	assert.Equal(t, "jpg", JPEG.Extension())
	assert.Equal(t, "png", PNG.Extension())
	assert.Equal(t, "webp", WEBP.Extension())
	assert.Equal(t, "image/jpeg", JPEG.MimeType())
	assert.Equal(t, "image/bmp", BMP.MimeType())
	assert.False(t, JPEG.SupportsAlpha())
	assert.True(t, PNG.SupportsAlpha())
}

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 200, A: 0xff}
			if (x+y)%2 == 0 {
				c.A = 0
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestEncodeDecodeAllFormats(t *testing.T) {
	src := ToRGB(checker(5, 4))
	for _, f := range All {
		t.Run(string(f), func(t *testing.T) {
			data, err := EncodeBytes(src, f, EncodeOptions{})
			require.NoError(t, err)

			img, got, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, f, got)
			assert.Equal(t, src.Bounds(), img.Bounds())
		})
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, _, err := Decode([]byte("definitely not an image"))
	assert.ErrorIs(t, err, domain.ErrDecode)

	_, _, err = Decode(nil)
	assert.ErrorIs(t, err, domain.ErrDecode)
}

func TestDetectReadsHeaderOnly(t *testing.T) {
	src := ToRGB(checker(5, 4))
	for _, f := range All {
		t.Run(string(f), func(t *testing.T) {
			data, err := EncodeBytes(src, f, EncodeOptions{})
			require.NoError(t, err)

			got, err := Detect(data)
			require.NoError(t, err)
			assert.Equal(t, f, got)
		})
	}

	// заголовок цел, пиксели обрезаны: Detect не смотрит дальше заголовка
	full, err := EncodeBytes(src, PNG, EncodeOptions{})
	require.NoError(t, err)
	got, err := Detect(full[:40])
	require.NoError(t, err)
	assert.Equal(t, PNG, got)
	_, _, err = Decode(full[:40])
	assert.ErrorIs(t, err, domain.ErrDecode)

	_, err = Detect([]byte("definitely not an image"))
	assert.ErrorIs(t, err, domain.ErrDecode)
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1)), Format("TIFF"), EncodeOptions{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestPNGRoundTripIsExact(t *testing.T) {
	src := checker(6, 6)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, _, err := Decode(buf.Bytes())
	require.NoError(t, err)

	out, err := EncodeBytes(img, PNG, EncodeOptions{})
	require.NoError(t, err)
	again, _, err := Decode(out)
	require.NoError(t, err)

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			assert.Equal(t,
				color.NRGBAModel.Convert(src.At(x, y)),
				color.NRGBAModel.Convert(again.At(x, y)))
		}
	}
}

func TestFlattenCompositesOnWhite(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 0xff})
	src.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 0})
	src.SetNRGBA(2, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 0x80})

	out := Flatten(src)
	rgba, ok := out.(*image.RGBA)
	require.True(t, ok)

	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 0xff}, rgba.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, rgba.RGBAAt(1, 0))

	half := rgba.RGBAAt(2, 0)
	assert.Equal(t, uint8(0xff), half.A)
	assert.InDelta(t, 0x7f, int(half.R), 2)
}

func TestFlattenKeepsOpaqueModels(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	assert.Same(t, src, Flatten(src))
}

func TestFlattenAlphaOnlyFallsBack(t *testing.T) {
	src := image.NewAlpha(image.Rect(0, 0, 2, 1))
	src.SetAlpha(0, 0, color.Alpha{A: 0x40})

	var out image.Image
	require.NotPanics(t, func() { out = Flatten(src) })
	rgba := out.(*image.RGBA)
	assert.Equal(t, uint8(0xff), rgba.RGBAAt(0, 0).A)
	assert.Equal(t, uint8(0x40), rgba.RGBAAt(0, 0).R)
}

func TestHasAlpha(t *testing.T) {
	assert.True(t, HasAlpha(image.NewNRGBA(image.Rect(0, 0, 1, 1))))
	assert.True(t, HasAlpha(image.NewRGBA(image.Rect(0, 0, 1, 1))))
	assert.False(t, HasAlpha(image.NewGray(image.Rect(0, 0, 1, 1))))
	assert.False(t, HasAlpha(image.NewYCbCr(image.Rect(0, 0, 1, 1), image.YCbCrSubsampleRatio420)))

	pal := image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.Black, color.White})
	assert.False(t, HasAlpha(pal))
	pal.Palette = append(pal.Palette, color.Transparent)
	assert.True(t, HasAlpha(pal))
}

func TestToRGBDropsAlphaKeepsColor(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 0x80})

	out := ToRGB(src)
	c := out.RGBAAt(0, 0)
	assert.Equal(t, uint8(0xff), c.A)
	assert.InDelta(t, 200, int(c.R), 1)
	assert.InDelta(t, 100, int(c.G), 1)
	assert.InDelta(t, 50, int(c.B), 1)
}
