package chi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	http2 "net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rankshow/GetBackFiles/internal/adapters/handlers/http/chi"
	file3 "github.com/Rankshow/GetBackFiles/internal/adapters/handlers/http/chi/v1/file"
	"github.com/Rankshow/GetBackFiles/internal/core/domain"
	"github.com/Rankshow/GetBackFiles/internal/core/port"
	"github.com/Rankshow/GetBackFiles/internal/core/service/file"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubCheck struct {
	name string
	err  error
}

func (s stubCheck) Name() string                      { return s.name }
func (s stubCheck) IsReady(ctx context.Context) error { return s.err }

func newRouter(checks ...port.ReadinessCheck) (http2.Handler, *file.MockFileService) {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockService := file.NewMockFileService()
	handler := file3.NewFileHandlerV1(mockService, 1<<20, discardLogger)
	return chi.NewRouter(discardLogger, handler, "", 0, checks...), mockService
}

func TestRouter_Health(t *testing.T) {
	// Arrange
	h, _ := newRouter()
	w := httptest.NewRecorder()

	// Act
	h.ServeHTTP(w, httptest.NewRequest(http2.MethodGet, "/health", nil))

	// Assert
	assert.Equal(t, http2.StatusOK, w.Code)
	var resp chi.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestRouter_Ready(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		// Arrange
		h, _ := newRouter(stubCheck{name: "MediaStore[images]"}, stubCheck{name: "FileRecordStore[file_records]"})
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, httptest.NewRequest(http2.MethodGet, "/health/ready", nil))

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		var resp chi.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, map[string]string{
			"MediaStore[images]":            "ok",
			"FileRecordStore[file_records]": "ok",
		}, resp.Checks)
	})

	t.Run("one check fails", func(t *testing.T) {
		// Arrange
		h, _ := newRouter(
			stubCheck{name: "MediaStore[images]"},
			stubCheck{name: "FileRecordStore[file_records]", err: errors.New("table not found")},
		)
		w := httptest.NewRecorder()

		// Act
		h.ServeHTTP(w, httptest.NewRequest(http2.MethodGet, "/health/ready", nil))

		// Assert
		assert.Equal(t, http2.StatusServiceUnavailable, w.Code)
		var resp chi.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "fail", resp.Status)
		assert.Equal(t, "fail", resp.Checks["FileRecordStore[file_records]"])
		assert.Equal(t, "ok", resp.Checks["MediaStore[images]"])
		assert.NotContains(t, w.Body.String(), "table not found")
	})
}

func TestRouter_Metrics(t *testing.T) {
	// Arrange
	h, mockService := newRouter()
	id := uuid.New()
	mockService.On("GetFile", mock.Anything, id).
		Return((*domain.StoredImage)(nil), domain.ErrFileRecordNotFound)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http2.MethodGet, "/file/"+id.String(), nil))
	w := httptest.NewRecorder()

	// Act
	h.ServeHTTP(w, httptest.NewRequest(http2.MethodGet, "/metrics", nil))

	// Assert
	assert.Equal(t, http2.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "imagevault_http_requests_total")
	assert.Contains(t, body, `path="/file/{id}"`)
	assert.NotContains(t, body, id.String())
}

func TestRouter_UnknownRoute(t *testing.T) {
	// Arrange
	h, _ := newRouter()
	w := httptest.NewRecorder()

	// Act
	h.ServeHTTP(w, httptest.NewRequest(http2.MethodGet, "/api/v1/file/upload", nil))

	// Assert
	assert.Equal(t, http2.StatusNotFound, w.Code)
}

func TestRouter_CORSOutsideProd(t *testing.T) {
	// Arrange
	h, _ := newRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http2.MethodOptions, "/upload", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http2.MethodPost)

	// Act
	h.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
