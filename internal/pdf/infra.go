package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Vovarama1992/file_converter/internal/domain"
)

const DefaultDPI = 200

type PopplerPDFConverter struct {
	dpi int
}

func NewPopplerPDFConverter(dpi int) *PopplerPDFConverter {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &PopplerPDFConverter{dpi: dpi}
}

// Available: есть ли pdftoppm в PATH
func (c *PopplerPDFConverter) Available() bool {
	_, err := exec.LookPath("pdftoppm")
	return err == nil
}

func (c *PopplerPDFConverter) RenderPages(
	ctx context.Context,
	pdf []byte,
) ([]image.Image, error) {

	// 1. уникальный temp-dir на один вызов
	tmpDir, err := os.MkdirTemp("", "pdfconv-*")
	if err != nil {
		return nil, err
	}
	// чистим на любом выходе
	defer os.RemoveAll(tmpDir)

	input := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(input, pdf, 0o600); err != nil {
		return nil, err
	}

	outBase := filepath.Join(tmpDir, "page")

	// 2. запускаем poppler
	var stderr bytes.Buffer
	cmd := exec.CommandContext(
		ctx,
		"pdftoppm",
		"-png",
		"-r", strconv.Itoa(c.dpi),
		input,
		outBase,
	)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		log.Printf("[pdf.poppler] pdftoppm failed: %v stderr=%s", err, strings.TrimSpace(stderr.String()))
		return nil, fmt.Errorf("%w: pdftoppm: %w", domain.ErrDecode, err)
	}

	// 3. собираем page-1.png, page-2.png ... (при >9 страницах poppler дополняет нулями)
	files, err := pageFiles(tmpDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no pages generated", domain.ErrDecode)
	}

	pages := make([]image.Image, 0, len(files))
	for _, fn := range files {
		f, err := os.Open(fn)
		if err != nil {
			return nil, err
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrDecode, filepath.Base(fn), err)
		}
		pages = append(pages, img)
	}

	return pages, nil
}

func pageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type numbered struct {
		n    int
		path string
	}
	var found []numbered
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "page-") || !strings.HasSuffix(name, ".png") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "page-"), ".png"))
		if err != nil {
			continue
		}
		found = append(found, numbered{n: n, path: filepath.Join(dir, name)})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })

	paths := make([]string, len(found))
	for i, f := range found {
		paths[i] = f.path
	}
	return paths, nil
}
