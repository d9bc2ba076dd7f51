package file

import (
	"errors"
	"net/http"

	"github.com/Rankshow/GetBackFiles/internal/core/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// GetFileV1 handles GET /file/{id}
func (h *HandlerV1) GetFileV1(w http.ResponseWriter, r *http.Request) {
	// ids are always UUIDs, anything else cannot match a record
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}

	stored, err := h.fileService.GetFile(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrFileRecordNotFound):
		http.Error(w, "file not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error getting file",
			"request_id", middleware.GetReqID(r.Context()),
			"id", id.String(),
			"error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.writeFile(w, V1FileResponse{
		ID:       stored.ID,
		ImageURL: stored.URL,
	})
}
