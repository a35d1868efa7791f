package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/arunima26vats/CosmicStack/internal/config"
	"github.com/arunima26vats/CosmicStack/internal/core/domain"
	"github.com/arunima26vats/CosmicStack/internal/core/ports"
	"github.com/arunima26vats/CosmicStack/internal/observability/metrics"
)

// multipartMemoryLimit bounds how much of a parsed form stays in memory
// before spilling to temp files.
const multipartMemoryLimit = 32 << 20

type categoryCounter interface {
	Len() int
}

type Router struct {
	cfg        config.Config
	media      ports.MediaRouter
	structured ports.StructuredRouter
	reporter   ports.StorageReporter
	categories categoryCounter
	metrics    *metrics.ServerMetrics
}

func NewRouter(
	cfg config.Config,
	media ports.MediaRouter,
	structured ports.StructuredRouter,
	reporter ports.StorageReporter,
	categories categoryCounter,
	serverMetrics *metrics.ServerMetrics,
) *Router {
	return &Router{
		cfg:        cfg,
		media:      media,
		structured: structured,
		reporter:   reporter,
		categories: categories,
		metrics:    serverMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/api/store", rt.storeArtifact)
	mux.HandleFunc("/api/stats", rt.storageStats)
	mux.HandleFunc("/api/recent_files", rt.recentFiles)
	mux.Handle("/metrics", rt.metrics.Handler())

	var handler http.Handler = mux
	if rt.cfg.APIMaxConcurrent > 0 {
		handler = backpressureMiddleware(handler, rt.cfg.APIMaxConcurrent, rt.cfg.BackpressureWait())
	}
	if rt.cfg.APIRateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	}
	handler = rt.metrics.Middleware("api", handler)
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// storeArtifact accepts one multipart submission and routes it: a "file"
// part goes through media routing, a "json_data" field through structured
// routing. Optional fields: "metadata_comment" and "auto_compress".
func (rt *Router) storeArtifact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, rt.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "artifact exceeds upload limit"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	comment := r.FormValue("metadata_comment")
	compress := parseBoolField(r.FormValue("auto_compress"))

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read uploaded file"})
			return
		}
		decision, routeErr := rt.media.Route(r.Context(), domain.MediaSubmission{
			Filename: header.Filename,
			Data:     data,
			Comment:  comment,
			Compress: compress,
		})
		rt.finishSubmission(w, "media", decision, routeErr, start)
	case r.FormValue("json_data") != "":
		decision, routeErr := rt.structured.Route(r.Context(), domain.StructuredSubmission{
			Payload:  []byte(r.FormValue("json_data")),
			Comment:  comment,
			Compress: compress,
		})
		rt.finishSubmission(w, "structured", decision, routeErr, start)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file or JSON data provided."})
	}
}

// finishSubmission renders the routing outcome. A decision may accompany
// an error when persistence failed after classification; it is attached
// so the caller can see where the artifact would have gone.
func (rt *Router) finishSubmission(w http.ResponseWriter, kind string, decision *domain.RoutingDecision, err error, start time.Time) {
	duration := time.Since(start)
	if err != nil {
		status := mapErrorToHTTPStatus(err)
		rt.metrics.RecordSubmission("api", kind, outcomeLabel(status), duration)
		if domain.IsKind(err, domain.ErrEngineUnavailable) {
			rt.metrics.RecordRecognitionFailure("api", "unavailable")
		} else if domain.IsKind(err, domain.ErrRecognitionFailed) {
			rt.metrics.RecordRecognitionFailure("api", "failed")
		}

		message := err.Error()
		if domain.IsKind(err, domain.ErrMalformedPayload) {
			// The dashboard matches this string verbatim.
			message = "Invalid JSON format."
		}
		body := map[string]any{"error": message}
		if decision != nil {
			body["decision"] = decision
		}
		writeJSON(w, status, body)
		return
	}

	rt.metrics.RecordSubmission("api", kind, "routed", duration)
	rt.metrics.RecordRouted("api", decision.Category, decision.Transforms)
	rt.metrics.SetRegistryCategories("api", rt.categories.Len())
	writeJSON(w, http.StatusCreated, decision)
}

func (rt *Router) storageStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	stats, err := rt.reporter.Stats(r.Context())
	if err != nil {
		// The dashboard renders whatever it gets; signal the scan
		// failure in-band the way it expects.
		writeJSON(w, http.StatusInternalServerError, &domain.StorageStats{
			StorageUsed:    "Error",
			StorageTotal:   "Error",
			FilesProcessed: 0,
			LastUpload:     "Error",
		})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (rt *Router) recentFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	files, err := rt.reporter.RecentFiles(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to scan storage"})
		return
	}
	if files == nil {
		files = []domain.FileSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"recent_files": files})
}

func outcomeLabel(status int) string {
	if status >= http.StatusInternalServerError {
		return "failed"
	}
	return "rejected"
}

func parseBoolField(v string) bool {
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return parsed
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
