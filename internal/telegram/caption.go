package telegram

import (
	"strconv"
	"strings"

	"github.com/Vovarama1992/file_converter/internal/format"
)

// request: то, что пользователь попросил подписью к файлу
type request struct {
	Format  format.Format
	Quality int
	ToPDF   bool
}

// parseCaption: "jpg 80", "webp", "pdf", "jpeg q=90". Пустая подпись → PNG.
func parseCaption(caption string) request {
	req := request{Format: format.PNG}

	for _, tok := range strings.Fields(strings.ToLower(caption)) {
		tok = strings.Trim(tok, ",;")

		if tok == "pdf" {
			req.ToPDF = true
			continue
		}
		if f, err := format.ParseFormat(tok); err == nil {
			req.Format = f
			continue
		}

		q := strings.TrimPrefix(strings.TrimPrefix(tok, "q="), "q")
		if n, err := strconv.Atoi(q); err == nil && n >= 1 && n <= 100 {
			req.Quality = n
		}
	}

	return req
}
