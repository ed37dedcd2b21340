package predictor

import (
	"context"
	"encoding/json"
	"time"

	"searchd/internal/model"
	"searchd/internal/store"
	"searchd/pkg/types"
)

// Predictor ties the loaded artifact to the prediction store. The artifact is
// immutable and the store serializes its own access, so Predictor itself needs
// no locking.
type Predictor struct {
	art     *model.Artifact
	st      *store.Store
	started time.Time
}

func New(art *model.Artifact, st *store.Store) *Predictor {
	return &Predictor{art: art, st: st, started: time.Now()}
}

// Predict scores the observation and records the result. raw is the original
// request body, stored verbatim alongside the prediction.
func (p *Predictor) Predict(ctx context.Context, obs types.Observation, raw []byte) (types.PredictResponse, error) {
	outcome, proba, err := p.art.Predict(obs.Fields())
	if err != nil {
		return types.PredictResponse{}, err
	}
	rec := types.PredictionRecord{
		ObservationID: *obs.ObservationID,
		Observation:   json.RawMessage(raw),
		Prediction:    outcome,
		Proba:         proba,
	}
	if err := p.st.Insert(ctx, rec); err != nil {
		return types.PredictResponse{}, err
	}
	return types.PredictResponse{
		ObservationID: rec.ObservationID,
		Outcome:       outcome,
		Proba:         proba,
	}, nil
}

// RecordOutcome stores the true outcome for a previously scored observation.
func (p *Predictor) RecordOutcome(ctx context.Context, id string, outcome bool) (types.OutcomeResponse, error) {
	rec, err := p.st.SetTrueClass(ctx, id, outcome)
	if err != nil {
		return types.OutcomeResponse{}, err
	}
	return types.OutcomeResponse{
		ObservationID:    rec.ObservationID,
		Outcome:          outcome,
		PredictedOutcome: rec.Prediction,
	}, nil
}

// ListPredictions returns up to limit stored predictions, newest first.
func (p *Predictor) ListPredictions(ctx context.Context, limit int) ([]types.PredictionRecord, error) {
	return p.st.List(ctx, limit)
}

// Status reports the loaded artifact and store state. Count failures degrade
// to an error field rather than failing the endpoint.
func (p *Predictor) Status(ctx context.Context) types.StatusResponse {
	resp := types.StatusResponse{
		State: "ready",
		Model: types.ModelStatus{
			Path:      p.art.Path(),
			Columns:   len(p.art.Columns()),
			Features:  p.art.FeatureWidth(),
			Classes:   p.art.Classes(),
			Threshold: p.art.Threshold(),
		},
		Store: types.StoreStatus{
			Driver: p.st.Driver(),
		},
		UptimeSeconds:  int64(time.Since(p.started).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
	}
	preds, outs, err := p.st.Counts(ctx)
	if err != nil {
		resp.State = "error"
		resp.Error = err.Error()
		return resp
	}
	resp.Store.Predictions = preds
	resp.Store.Outcomes = outs
	return resp
}

// Ready reports whether the service can take traffic: the artifact is loaded
// by construction, so readiness is the store being reachable.
func (p *Predictor) Ready(ctx context.Context) bool {
	return p.st.Ping(ctx) == nil
}
