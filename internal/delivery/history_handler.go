package delivery

import (
	"net/http"

	"github.com/Vovarama1992/file_converter/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
)

type HistoryHandler struct {
	recordService ports.RecordService
	log           *logger.ZapLogger
}

func NewHistoryHandler(recordService ports.RecordService, log *logger.ZapLogger) *HistoryHandler {
	return &HistoryHandler{
		recordService: recordService,
		log:           log,
	}
}

// GET /history: новые сверху
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	history, err := h.recordService.GetHistory(r.Context(), SessionFrom(r.Context()))
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "history error", Error: err})
		writeError(w, http.StatusInternalServerError, "history error")
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// DELETE /history
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.recordService.DeleteHistory(r.Context(), SessionFrom(r.Context())); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "history clear error", Error: err})
		writeError(w, http.StatusInternalServerError, "history error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
