package ports

import (
	"path/filepath"
	"strings"
)

type ArtifactKind string

const (
	KindPDF   ArtifactKind = "pdf"
	KindImage ArtifactKind = "image"
)

// InputArtifact: загруженный файл, после чтения не меняется
type InputArtifact struct {
	FileName string
	Kind     ArtifactKind
	Bytes    []byte
}

// Stem: имя файла без каталога и расширения
func (a InputArtifact) Stem() string {
	base := filepath.Base(a.FileName)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		return "image"
	}
	return stem
}

// OutputArtifact: готовый файл для скачивания
type OutputArtifact struct {
	FileName string
	Bytes    []byte
	MimeType string
}
