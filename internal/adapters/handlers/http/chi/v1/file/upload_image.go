package file

import (
	"errors"
	"net/http"

	"github.com/Rankshow/GetBackFiles/internal/core/domain"
	"github.com/go-chi/chi/v5/middleware"
)

// UploadImageV1 handles POST /upload with a multipart "file" field
func (h *HandlerV1) UploadImageV1(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	if r.ContentLength > h.maxUploadSize {
		http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.logger.Warn("invalid multipart form", "request_id", reqID, "error", err)
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.logger.Warn("failed to remove multipart temp files", "request_id", reqID, "error", err)
		}
	}()

	f, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer f.Close()

	if header.Size == 0 {
		http.Error(w, "file is empty", http.StatusBadRequest)
		return
	}

	stored, err := h.fileService.UploadImage(r.Context(), f)
	switch {
	case errors.Is(err, domain.ErrEmptyFile), errors.Is(err, domain.ErrInvalidImage):
		h.logger.Info("rejected upload", "request_id", reqID, "filename", header.Filename, "error", err)
		http.Error(w, "file is not a supported image", http.StatusBadRequest)
		return
	case err != nil:
		h.logger.Error("error uploading image", "request_id", reqID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.writeFile(w, V1FileResponse{
		ID:       stored.ID,
		ImageURL: stored.URL,
	})
}
