package file

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Rankshow/GetBackFiles/internal/core/port"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// multipartMemory is how much of a form ParseMultipartForm keeps in memory
// before spilling to temporary files.
const multipartMemory = 8 << 20

// HandlerV1 is the handler for image routes
type HandlerV1 struct {
	fileService   port.FileService
	maxUploadSize int64
	logger        *slog.Logger
}

// NewFileHandlerV1 creates HandlerV1. Request bodies larger than maxUploadSize
// are rejected with 413.
func NewFileHandlerV1(service port.FileService, maxUploadSize int64, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		fileService:   service,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// Routes registers handler routes on router
func (h *HandlerV1) Routes(router chi.Router) {
	router.Post("/upload", h.UploadImageV1)
	router.Get("/file/{id}", h.GetFileV1)
}

// V1FileResponse is returned by both upload and lookup
type V1FileResponse struct {
	ID       uuid.UUID `json:"id"`
	ImageURL string    `json:"imageUrl"`
}

func (h *HandlerV1) writeFile(w http.ResponseWriter, resp V1FileResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
