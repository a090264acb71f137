package delivery

import (
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func RegisterRoutes(
	r chi.Router,
	hConv *ConvertHandler,
	hHist *HistoryHandler,
	ratePerMin int,
) {
	r.Group(func(pr chi.Router) {
		pr.Use(
			httputil.RecoverMiddleware,
			SessionMiddleware,
		)

		pr.Get("/formats", hConv.Formats)

		// --- конвертация ---
		pr.Group(func(cr chi.Router) {
			if ratePerMin > 0 {
				cr.Use(httprate.LimitByIP(ratePerMin, time.Minute))
			}
			cr.Post("/convert/pdf-to-images", hConv.PDFToImages)
			cr.Post("/convert/images-to-pdf", hConv.ImagesToPDF)
			cr.Post("/convert/image", hConv.Image)
		})

		// --- история ---
		pr.Get("/history", hHist.List)
		pr.Delete("/history", hHist.Clear)
	})
}
