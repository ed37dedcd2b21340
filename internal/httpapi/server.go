package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"searchd/internal/store"
	"searchd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Predict(ctx context.Context, obs types.Observation, raw []byte) (types.PredictResponse, error)
	RecordOutcome(ctx context.Context, id string, outcome bool) (types.OutcomeResponse, error)
	ListPredictions(ctx context.Context, limit int) ([]types.PredictionRecord, error)
	Status(ctx context.Context) types.StatusResponse
	Ready(ctx context.Context) bool
}

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	r.Use(MetricsMiddleware)

	r.Post("/should_search", func(w http.ResponseWriter, r *http.Request) {
		if !requireJSON(w, r) {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var obs types.Observation
		raw, err := readJSONBody(r, &obs)
		if err == nil {
			err = validateStruct(obs)
		}
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}

		start := time.Now()
		lvl := requestLogLevel(r)
		if lvl >= LevelInfo {
			logPredictStart(r, *obs.ObservationID)
		}
		// Join server base context with request context so shutdown cancels work too.
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		resp, err := svc.Predict(joinedCtx, obs, raw)
		if err != nil {
			// If context was canceled (client disconnect), just return.
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := errorStatus(err)
			writeJSONError(w, status, err.Error())
			if lvl >= LevelInfo {
				logRequestEnd(r, "predict end", status, start, err)
			}
			return
		}
		countPrediction(resp.Outcome)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
		if lvl >= LevelInfo {
			logRequestEnd(r, "predict end", http.StatusOK, start, nil)
		}
	})

	r.Post("/search_result", func(w http.ResponseWriter, r *http.Request) {
		if !requireJSON(w, r) {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.OutcomeRequest
		_, err := readJSONBody(r, &req)
		if err == nil {
			err = validateStruct(req)
		}
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}

		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		resp, err := svc.RecordOutcome(joinedCtx, *req.ObservationID, *req.Outcome)
		if err != nil {
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			writeJSONError(w, errorStatus(err), err.Error())
			return
		}
		outcomesTotal.Inc()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
	})

	r.Get("/predictions", func(w http.ResponseWriter, r *http.Request) {
		limit := defaultListLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				writeJSONError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = n
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}
		recs, err := svc.ListPredictions(r.Context(), limit)
		if err != nil {
			writeJSONError(w, errorStatus(err), err.Error())
			return
		}
		if recs == nil {
			recs = []types.PredictionRecord{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.PredictionsResponse{Predictions: recs}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status(r.Context())); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready(r.Context()) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("unavailable"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// errorStatus maps well-known service errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case store.IsDuplicate(err):
		return http.StatusConflict
	case store.IsNotFound(err):
		return http.StatusNotFound
	case store.IsUnavailable(err):
		return http.StatusServiceUnavailable
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}
