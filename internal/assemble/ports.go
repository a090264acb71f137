package assemble

import "context"

// PDFWriter собирает документ: одна страница на изображение, порядок сохраняется
type PDFWriter interface {
	WritePDF(ctx context.Context, pages [][]byte) ([]byte, error)
}
