package delivery

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/Vovarama1992/file_converter/internal/archive"
	"github.com/Vovarama1992/file_converter/internal/assemble"
	"github.com/Vovarama1992/file_converter/internal/error_notificator"
	"github.com/Vovarama1992/file_converter/internal/format"
	"github.com/Vovarama1992/file_converter/internal/pdf"
	"github.com/Vovarama1992/file_converter/internal/ports"
	"github.com/Vovarama1992/file_converter/internal/transcode"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"
)

// часть multipart, которая держится в памяти; остальное multipart пишет во временные файлы
const formMemory = 8 << 20

type ConvertHandler struct {
	pdfService       *pdf.PDFService
	assembleService  *assemble.Service
	transcodeService *transcode.Service
	recordService    ports.RecordService
	s3Service        ports.S3Service
	notify           error_notificator.Notificator
	log              *logger.ZapLogger
	maxUpload        int64
}

func NewConvertHandler(
	pdfService *pdf.PDFService,
	assembleService *assemble.Service,
	transcodeService *transcode.Service,
	recordService ports.RecordService,
	s3Service ports.S3Service,
	notify error_notificator.Notificator,
	log *logger.ZapLogger,
	maxUpload int64,
) *ConvertHandler {
	return &ConvertHandler{
		pdfService:       pdfService,
		assembleService:  assembleService,
		transcodeService: transcodeService,
		recordService:    recordService,
		s3Service:        s3Service,
		notify:           notify,
		log:              log,
		maxUpload:        maxUpload,
	}
}

// POST /convert/pdf-to-images
func (h *ConvertHandler) PDFToImages(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	target, err := format.ParseFormat(formValue(r, "format", "PNG"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	in, err := readFormFile(r, "file", ports.KindPDF)
	if err != nil {
		h.fail(w, r, "pdf-to-images", err)
		return
	}

	pages, err := h.pdfService.Convert(r.Context(), in.Bytes, target)
	if err != nil {
		h.fail(w, r, "pdf-to-images", fmt.Errorf("%s: %w", in.FileName, err))
		return
	}

	out := pages[0]
	if len(pages) > 1 {
		if out, err = archive.Package(pages); err != nil {
			h.fail(w, r, "pdf-to-images", err)
			return
		}
	}

	h.info(fmt.Sprintf("pdf-to-images: %s (%s) → %d %s pages, %s",
		in.FileName, humanize.Bytes(uint64(len(in.Bytes))), len(pages), target, humanize.Bytes(uint64(len(out.Bytes)))))

	if _, err := h.recordService.AddPDFToImages(r.Context(), SessionFrom(r.Context()), in.FileName, len(pages)); err != nil {
		h.warn("history append failed", err)
	}

	w.Header().Set("X-Page-Count", strconv.Itoa(len(pages)))
	h.send(w, r, out)
}

// POST /convert/images-to-pdf: порядок частей "files" = порядок страниц
func (h *ConvertHandler) ImagesToPDF(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	inputs := make([]ports.InputArtifact, 0, len(headers))
	for _, fh := range headers {
		in, err := readHeader(fh, ports.KindImage)
		if err != nil {
			h.fail(w, r, "images-to-pdf", err)
			return
		}
		inputs = append(inputs, in)
	}

	out, err := h.assembleService.Convert(r.Context(), inputs)
	if err != nil {
		h.fail(w, r, "images-to-pdf", err)
		return
	}

	h.info(fmt.Sprintf("images-to-pdf: %d images → %s", len(inputs), humanize.Bytes(uint64(len(out.Bytes)))))

	if _, err := h.recordService.AddImagesToPDF(r.Context(), SessionFrom(r.Context()), len(inputs)); err != nil {
		h.warn("history append failed", err)
	}

	w.Header().Set("X-Page-Count", strconv.Itoa(len(inputs)))
	h.send(w, r, out)
}

// POST /convert/image
func (h *ConvertHandler) Image(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	target, err := format.ParseFormat(formValue(r, "format", "PNG"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var quality int
	if q := r.FormValue("quality"); q != "" {
		quality, err = strconv.Atoi(q)
		if err != nil || quality < 1 || quality > 100 {
			writeError(w, http.StatusBadRequest, "quality must be an integer within 1..100")
			return
		}
	}

	in, err := readFormFile(r, "file", ports.KindImage)
	if err != nil {
		h.fail(w, r, "image", err)
		return
	}

	// исходный формат для истории; ошибку отдаст сам Convert
	from, _ := format.Detect(in.Bytes)

	out, err := h.transcodeService.Convert(in, target, quality)
	if err != nil {
		h.fail(w, r, "image", err)
		return
	}

	h.info(fmt.Sprintf("image: %s %s → %s %s", in.FileName, from, out.FileName, humanize.Bytes(uint64(len(out.Bytes)))))

	if _, err := h.recordService.AddImageFormat(r.Context(), SessionFrom(r.Context()), from.String(), target.String()); err != nil {
		h.warn("history append failed", err)
	}

	h.send(w, r, out)
}

// GET /formats
func (h *ConvertHandler) Formats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]format.Format{
		"pdf_to_images": pdf.Formats,
		"image":         format.All,
	})
}

func (h *ConvertHandler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	tooLargeMsg := "upload exceeds " + humanize.Bytes(uint64(h.maxUpload))
	if r.ContentLength > h.maxUpload {
		writeError(w, http.StatusRequestEntityTooLarge, tooLargeMsg)
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(formMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			writeError(w, http.StatusRequestEntityTooLarge, tooLargeMsg)
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid multipart: "+err.Error())
		return false
	}
	return true
}

func (h *ConvertHandler) send(w http.ResponseWriter, r *http.Request, out ports.OutputArtifact) {
	if h.s3Service != nil {
		url, err := h.s3Service.SaveArtifact(r.Context(), SessionFrom(r.Context()), out)
		if err != nil {
			// байты уже готовы, отдаём их без ссылки
			_ = h.notify.Notify(r.Context(), "s3", err, "mirror "+out.FileName)
		} else {
			w.Header().Set("X-Artifact-URL", url)
		}
	}
	writeArtifact(w, out)
}

func (h *ConvertHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		_ = h.notify.Notify(r.Context(), op, err, r.URL.Path)
		writeError(w, status, "internal error")
		return
	}
	h.warn(op+" failed", err)
	writeError(w, status, err.Error())
}

func (h *ConvertHandler) info(msg string) {
	h.log.Log(logger.LogEntry{Level: "info", Message: msg})
}

func (h *ConvertHandler) warn(msg string, err error) {
	h.log.Log(logger.LogEntry{Level: "warn", Message: msg, Error: err})
}

func formValue(r *http.Request, key, fallback string) string {
	if v := strings.TrimSpace(r.FormValue(key)); v != "" {
		return v
	}
	return fallback
}

func readFormFile(r *http.Request, field string, kind ports.ArtifactKind) (ports.InputArtifact, error) {
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return ports.InputArtifact{}, errMissingFile(field)
	}
	return readHeader(headers[0], kind)
}

func readHeader(fh *multipart.FileHeader, kind ports.ArtifactKind) (ports.InputArtifact, error) {
	f, err := fh.Open()
	if err != nil {
		return ports.InputArtifact{}, err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return ports.InputArtifact{}, err
	}
	return ports.InputArtifact{FileName: fh.Filename, Kind: kind, Bytes: b}, nil
}
