package types

import (
	"encoding/json"
	"time"
)

// PredictResponse is returned by POST /should_search.
type PredictResponse struct {
	// Echo of the submitted observation id.
	// example: obs-0001
	ObservationID string `json:"observation_id" example:"obs-0001"`
	// Predicted class: true when a search is predicted to be warranted.
	// example: true
	Outcome bool `json:"outcome" example:"true"`
	// Probability of the positive class.
	// example: 0.73
	Proba float64 `json:"proba" example:"0.73"`
}

// OutcomeRequest is the body of POST /search_result, recording what actually
// happened for a previously scored observation.
type OutcomeRequest struct {
	// example: obs-0001
	ObservationID *string `json:"observation_id" validate:"required" example:"obs-0001"`
	// True outcome of the encounter.
	// example: false
	Outcome *bool `json:"outcome" validate:"required"`
}

// OutcomeResponse is returned by POST /search_result.
type OutcomeResponse struct {
	// example: obs-0001
	ObservationID string `json:"observation_id" example:"obs-0001"`
	// Recorded true outcome.
	Outcome bool `json:"outcome"`
	// What the model predicted when the observation was first submitted.
	PredictedOutcome bool `json:"predicted_outcome"`
}

// PredictionRecord is a stored prediction as returned by GET /predictions.
type PredictionRecord struct {
	ObservationID string `json:"observation_id"`
	// Raw observation JSON as originally submitted.
	Observation json.RawMessage `json:"observation"`
	Prediction  bool            `json:"prediction"`
	Proba       float64         `json:"proba"`
	// True outcome, once recorded via /search_result.
	TrueClass *bool     `json:"true_class,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PredictionsResponse wraps the list returned by GET /predictions.
type PredictionsResponse struct {
	Predictions []PredictionRecord `json:"predictions"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: missing required field "Type"
	Error string `json:"error" example:"missing required field \"Type\""`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// ModelStatus summarizes the loaded artifact for GET /status.
type ModelStatus struct {
	// Directory the artifact was loaded from.
	// example: /srv/searchd/model
	Path string `json:"path" example:"/srv/searchd/model"`
	// Number of input columns.
	// example: 11
	Columns int `json:"columns" example:"11"`
	// Width of the encoded feature vector.
	// example: 28
	Features int `json:"features" example:"28"`
	// Class labels, negative first.
	Classes []string `json:"classes"`
	// Decision threshold on the positive-class probability.
	// example: 0.5
	Threshold float64 `json:"threshold" example:"0.5"`
}

// StoreStatus summarizes the prediction store for GET /status.
type StoreStatus struct {
	// Backing driver: sqlite or pgx.
	// example: sqlite
	Driver string `json:"driver" example:"sqlite"`
	// Total stored predictions.
	// example: 42
	Predictions int64 `json:"predictions" example:"42"`
	// Stored predictions with a recorded true outcome.
	// example: 17
	Outcomes int64 `json:"outcomes" example:"17"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Overall service state (ready or error).
	// example: ready
	State string      `json:"state" example:"ready"`
	Model ModelStatus `json:"model"`
	Store StoreStatus `json:"store"`
	// Optional top-level error message (e.g. store unreachable).
	Error string `json:"error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
