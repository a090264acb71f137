package archive

import (
	"bytes"
	"io"
	"testing"

	"github.com/Vovarama1992/file_converter/internal/domain"
	"github.com/Vovarama1992/file_converter/internal/ports"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readZip(t *testing.T, data []byte) (names []string, bodies [][]byte) {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		names = append(names, f.Name)
		bodies = append(bodies, b)
	}
	return names, bodies
}

func TestPackage(t *testing.T) {
	out, err := Package([]ports.OutputArtifact{
		{FileName: "page_1.png", Bytes: []byte("one")},
		{FileName: "page_2.png", Bytes: []byte("two")},
		{FileName: "page_3.png", Bytes: []byte("three")},
	})
	require.NoError(t, err)
	assert.Equal(t, OutputName, out.FileName)
	assert.Equal(t, MimeType, out.MimeType)

	names, bodies := readZip(t, out.Bytes)
	assert.Equal(t, []string{"page_1.png", "page_2.png", "page_3.png"}, names)
	assert.Equal(t, []byte("three"), bodies[2])
}

func TestPackageKeepsDuplicates(t *testing.T) {
	out, err := Package([]ports.OutputArtifact{
		{FileName: "same.png", Bytes: []byte("a")},
		{FileName: "same.png", Bytes: []byte("b")},
	})
	require.NoError(t, err)

	names, bodies := readZip(t, out.Bytes)
	assert.Equal(t, []string{"same.png", "same.png"}, names)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b")}, bodies)
}

func TestPackageEmpty(t *testing.T) {
	_, err := Package(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}
