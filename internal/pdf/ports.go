package pdf

import (
	"context"
	"image"
)

// PageRenderer превращает PDF в растровые страницы в порядке документа
type PageRenderer interface {
	RenderPages(ctx context.Context, pdf []byte) ([]image.Image, error)
}
