package chi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Rankshow/GetBackFiles/internal/adapters/handlers/http/chi/v1/file"
	"github.com/Rankshow/GetBackFiles/internal/core/port"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const readinessTimeout = 500 * time.Millisecond

// NewRouter builds http.Handler with chi
func NewRouter(
	logger *slog.Logger,
	fileHandler *file.HandlerV1,
	env string,
	requestTimeout time.Duration,
	checks ...port.ReadinessCheck,
) http.Handler {
	r := chi.NewRouter()

	//handle requestID to facilitate debug (X-Request-ID)
	//It fetches from request if exists, or creates it
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(logger))
	r.Use(MetricsMiddleware())
	r.Use(middleware.Recoverer)
	if requestTimeout > 0 {
		r.Use(middleware.Timeout(requestTimeout))
	}

	if env != "prod" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Group(fileHandler.Routes)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
		}
		writeJSON(w, http.StatusOK, resp, logger)
	})

	r.Get("/health/ready", readinessHandler(logger, checks))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

func readinessHandler(logger *slog.Logger, checks []port.ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
			Checks:    make(map[string]string, len(checks)),
		}
		status := http.StatusOK

		for _, c := range checks {
			cctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
			err := c.IsReady(cctx)
			cancel()

			if err != nil {
				logger.Warn("readiness check failed", "check", c.Name(), "error", err)
				resp.Checks[c.Name()] = "fail"
				resp.Status = "fail"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[c.Name()] = "ok"
		}

		writeJSON(w, status, resp, logger)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("error encoding response", "error", err)
	}
}
