package delivery

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/Vovarama1992/file_converter/internal/domain"
	"github.com/Vovarama1992/file_converter/internal/ports"
	"github.com/goccy/go-json"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeArtifact(w http.ResponseWriter, a ports.OutputArtifact) {
	w.Header().Set("Content-Type", a.MimeType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Bytes)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Bytes)
}

// statusFor переводит ошибку конвейера в HTTP статус
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrDecode), errors.Is(err, domain.ErrEncode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEmptyInput), errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
