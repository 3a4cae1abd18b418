package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"whisperd/internal/manager"
	"whisperd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	ListModels() []types.Model
	Status() types.StatusResponse
	Transcribe(ctx context.Context, req manager.TranscribeRequest) (types.TranscriptionResponse, error)
	Ready() bool
}

// multipartMemoryBytes bounds the in-memory portion of multipart parsing;
// larger uploads spill to disk and are cleaned up after the request.
const multipartMemoryBytes = 32 << 20

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	r.Use(MetricsMiddleware)

	// @Summary      Transcribe an uploaded audio file
	// @Accept       multipart/form-data
	// @Produce      json
	// @Param        file  formData  file    true   "Audio file to transcribe"
	// @Param        model formData  string  false  "Model name override"
	// @Success      200 {object} types.TranscriptionResponse
	// @Failure      400 {object} types.ErrorResponse
	// @Failure      503 {object} types.ErrorResponse
	// @Router       /v1/audio/transcriptions [post]
	r.Post("/v1/audio/transcriptions", func(w http.ResponseWriter, r *http.Request) {
		handleTranscription(svc, w, r)
	})

	r.Get("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.ModelsResponse{Models: svc.ListModels()}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

func handleTranscription(svc Service, w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "uploaded file exceeds the size limit")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "request must be multipart/form-data")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()
	if header.Filename == "" {
		writeJSONError(w, http.StatusBadRequest, "uploaded file must include a filename")
		return
	}
	audio, err := io.ReadAll(file)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "unable to read uploaded file")
		return
	}
	if len(audio) == 0 {
		writeJSONError(w, http.StatusBadRequest, "uploaded file is empty")
		return
	}
	// FormValue covers both the multipart field and the ?model= query param.
	model := r.FormValue("model")

	lvl := requestLogLevel(r)
	start := time.Now()
	if lvl >= LevelInfo && zlog != nil {
		z := zlog.Info().Str("path", r.URL.Path).Str("file", header.Filename).Int("size", len(audio)).Str("model", model)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Msg("transcription start")
	}

	// Join server base context with request context so shutdown cancels work too.
	joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	resp, err := svc.Transcribe(joinedCtx, manager.TranscribeRequest{
		Model:    model,
		Filename: header.Filename,
		Audio:    audio,
	})
	if err != nil {
		// If context was canceled (client disconnect), just return.
		if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
			return
		}
		status := statusForError(err)
		if status == http.StatusTooManyRequests {
			IncrementBackpressure("queue_full")
		}
		writeJSONError(w, status, err.Error())
		logEnd(r, lvl, status, start, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	logEnd(r, lvl, http.StatusOK, start, nil)
}

// statusForError maps manager failure kinds to HTTP status codes. No raw
// internal detail beyond the error message crosses this boundary.
func statusForError(err error) int {
	switch {
	case manager.IsModelUnavailable(err):
		return http.StatusServiceUnavailable
	case manager.IsModelLoadFailed(err):
		return http.StatusServiceUnavailable
	case manager.IsEngineUnavailable(err):
		return http.StatusServiceUnavailable
	case manager.IsTooBusy(err):
		return http.StatusTooManyRequests
	case manager.IsTranscriptionFailed(err):
		return http.StatusInternalServerError
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

func logEnd(r *http.Request, lvl LogLevel, status int, start time.Time, err error) {
	if lvl < LevelInfo || zlog == nil {
		return
	}
	z := zlog.Info().Int("status", status).Dur("dur", time.Since(start))
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		z = z.Str("request_id", rid)
	}
	if err != nil {
		z = z.Err(err)
	}
	z.Msg("transcription end")
}
