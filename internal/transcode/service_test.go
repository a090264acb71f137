package transcode

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/Vovarama1992/file_converter/internal/domain"
	"github.com/Vovarama1992/file_converter/internal/format"
	"github.com/Vovarama1992/file_converter/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transparentPNG(t *testing.T) ports.InputArtifact {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if x < 8 {
				img.SetNRGBA(x, y, color.NRGBA{R: 0, G: 0, B: 0, A: 0xff})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{R: 0, G: 0, B: 0, A: 0})
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return ports.InputArtifact{FileName: "uploads/logo.png", Kind: ports.KindImage, Bytes: buf.Bytes()}
}

func TestConvertAlphaToJPEGFlattensOnWhite(t *testing.T) {
	out, err := NewService(format.EncodeOptions{Quality: 100}).Convert(transparentPNG(t), format.JPEG, 0)
	require.NoError(t, err)
	assert.Equal(t, "logo.jpg", out.FileName)
	assert.Equal(t, "image/jpeg", out.MimeType)

	img, f, err := format.Decode(out.Bytes)
	require.NoError(t, err)
	assert.Equal(t, format.JPEG, f)
	assert.False(t, format.HasAlpha(img))

	// JPEG с потерями: сравниваем с допуском вдали от границы
	r, g, b, _ := img.At(2, 8).RGBA()
	assert.Less(t, r>>8, uint32(16))
	assert.Less(t, g>>8, uint32(16))
	assert.Less(t, b>>8, uint32(16))

	r, g, b, _ = img.At(13, 8).RGBA()
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
}

func TestJPGAliasMatchesJPEG(t *testing.T) {
	svc := NewService(format.EncodeOptions{})
	in := transparentPNG(t)

	jpg, err := format.ParseFormat("JPG")
	require.NoError(t, err)
	jpeg, err := format.ParseFormat("JPEG")
	require.NoError(t, err)

	a, err := svc.Convert(in, jpg, 0)
	require.NoError(t, err)
	b, err := svc.Convert(in, jpeg, 0)
	require.NoError(t, err)

	assert.Equal(t, a.Bytes, b.Bytes)
	assert.Equal(t, "logo.jpg", a.FileName)
	assert.Equal(t, a.FileName, b.FileName)
}

func TestPNGToPNGIsExact(t *testing.T) {
	in := transparentPNG(t)
	out, err := NewService(format.EncodeOptions{}).Convert(in, format.PNG, 0)
	require.NoError(t, err)
	assert.Equal(t, "logo.png", out.FileName)

	src, _, err := format.Decode(in.Bytes)
	require.NoError(t, err)
	dst, _, err := format.Decode(out.Bytes)
	require.NoError(t, err)

	require.Equal(t, src.Bounds(), dst.Bounds())
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			assert.Equal(t,
				color.NRGBAModel.Convert(src.At(x, y)),
				color.NRGBAModel.Convert(dst.At(x, y)))
		}
	}
}

func TestAlphaKeptForAlphaTargets(t *testing.T) {
	out, err := NewService(format.EncodeOptions{}).Convert(transparentPNG(t), format.WEBP, 0)
	require.NoError(t, err)
	assert.Equal(t, "logo.webp", out.FileName)

	img, f, err := format.Decode(out.Bytes)
	require.NoError(t, err)
	assert.Equal(t, format.WEBP, f)

	_, _, _, a := img.At(13, 8).RGBA()
	assert.Equal(t, uint32(0), a)
}

func TestAllTargets(t *testing.T) {
	svc := NewService(format.EncodeOptions{})
	in := transparentPNG(t)
	for _, f := range format.All {
		out, err := svc.Convert(in, f, 0)
		require.NoError(t, err, f)
		assert.Equal(t, "logo."+f.Extension(), out.FileName)

		_, got, err := format.Decode(out.Bytes)
		require.NoError(t, err, f)
		assert.Equal(t, f, got)
	}
}

func TestQualityChangesOutput(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 4), B: uint8((x ^ y) * 4), A: 0xff})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	in := ports.InputArtifact{FileName: "grad.png", Bytes: buf.Bytes()}

	svc := NewService(format.EncodeOptions{})
	low, err := svc.Convert(in, format.JPEG, 10)
	require.NoError(t, err)
	high, err := svc.Convert(in, format.JPEG, 95)
	require.NoError(t, err)
	assert.Less(t, len(low.Bytes), len(high.Bytes))
}

func TestConvertUndecodable(t *testing.T) {
	out, err := NewService(format.EncodeOptions{}).Convert(
		ports.InputArtifact{FileName: "x.png", Bytes: []byte("garbage")}, format.PNG, 0)
	assert.ErrorIs(t, err, domain.ErrDecode)
	assert.Empty(t, out.FileName)
	assert.Nil(t, out.Bytes)
}
