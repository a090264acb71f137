package pdf

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/Vovarama1992/file_converter/internal/assemble"
	"github.com/Vovarama1992/file_converter/internal/domain"
	"github.com/Vovarama1992/file_converter/internal/format"
	"github.com/Vovarama1992/file_converter/internal/ports"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// samplePDF собирает настоящий PDF из n страниц разной ширины
func samplePDF(t *testing.T, n int) []byte {
	t.Helper()
	inputs := make([]ports.InputArtifact, n)
	for i := range inputs {
		b, err := format.EncodeBytes(solid(100+50*i, 80, color.NRGBA{R: 200, G: 40, B: 40, A: 255}), format.PNG, format.EncodeOptions{})
		require.NoError(t, err)
		inputs[i] = ports.InputArtifact{FileName: "p.png", Kind: ports.KindImage, Bytes: b}
	}
	out, err := assemble.NewService(assemble.NewPdfcpuWriter()).Convert(context.Background(), inputs)
	require.NoError(t, err)
	return out.Bytes
}

func renderers(t *testing.T) map[string]PageRenderer {
	r := map[string]PageRenderer{"fitz": NewFitzPDFConverter(72)}
	if p := NewPopplerPDFConverter(72); p.Available() {
		r["poppler"] = p
	} else {
		t.Log("pdftoppm not installed, poppler backend skipped")
	}
	return r
}

func TestRenderersKeepPageOrder(t *testing.T) {
	doc := samplePDF(t, 3)

	for name, r := range renderers(t) {
		t.Run(name, func(t *testing.T) {
			pages, err := r.RenderPages(context.Background(), doc)
			require.NoError(t, err)
			require.Len(t, pages, 3)

			// 72 dpi: 1 pt = 1 px
			for i, p := range pages {
				assert.InDelta(t, 100+50*i, p.Bounds().Dx(), 2)
				assert.InDelta(t, 80, p.Bounds().Dy(), 2)
			}
		})
	}
}

func TestRenderersRejectGarbage(t *testing.T) {
	for name, r := range renderers(t) {
		t.Run(name, func(t *testing.T) {
			pages, err := r.RenderPages(context.Background(), []byte("definitely not a pdf"))
			assert.Error(t, err)
			assert.Empty(t, pages)
		})
	}
}

func encrypt(t *testing.T, doc []byte, userPW, ownerPW string) []byte {
	t.Helper()
	var out bytes.Buffer
	conf := model.NewAESConfiguration(userPW, ownerPW, 256)
	require.NoError(t, api.Encrypt(bytes.NewReader(doc), &out, conf))
	return out.Bytes()
}

func TestRenderersRejectEncrypted(t *testing.T) {
	locked := encrypt(t, samplePDF(t, 2), "secret", "owner")

	for name, r := range renderers(t) {
		t.Run(name, func(t *testing.T) {
			svc := NewPDFService(r, format.EncodeOptions{})
			out, err := svc.Convert(context.Background(), locked, format.PNG)
			assert.ErrorIs(t, err, domain.ErrDecode)
			assert.Empty(t, out)
		})
	}
}

// только пароль владельца: документ открывается без ввода пароля
func TestRenderersOpenOwnerOnlyEncrypted(t *testing.T) {
	doc := encrypt(t, samplePDF(t, 2), "", "owner")

	for name, r := range renderers(t) {
		t.Run(name, func(t *testing.T) {
			svc := NewPDFService(r, format.EncodeOptions{})
			out, err := svc.Convert(context.Background(), doc, format.PNG)
			require.NoError(t, err)
			require.Len(t, out, 2)
			assert.Equal(t, "page_1.png", out[0].FileName)
			assert.Equal(t, "page_2.png", out[1].FileName)
		})
	}
}

func TestServiceWithFitzEndToEnd(t *testing.T) {
	svc := NewPDFService(NewFitzPDFConverter(72), format.EncodeOptions{})

	out, err := svc.Convert(context.Background(), samplePDF(t, 2), format.JPEG)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for i, a := range out {
		assert.Equal(t, PageName(i+1, format.JPEG), a.FileName)
		img, got, err := format.Decode(a.Bytes)
		require.NoError(t, err)
		assert.Equal(t, format.JPEG, got)
		assert.IsType(t, (*image.YCbCr)(nil), img)
	}

	_, err = svc.Convert(context.Background(), []byte("%PDF-1.4 broken"), format.PNG)
	assert.ErrorIs(t, err, domain.ErrDecode)
}

func TestPageFilesSortsNumerically(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"page-10.png", "page-02.png", "page-1.png", "other.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	files, err := pageFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Contains(t, files[0], "page-1.png")
	assert.Contains(t, files[1], "page-02.png")
	assert.Contains(t, files[2], "page-10.png")
}
