package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"searchd/internal/store"
	"searchd/pkg/types"
)

type mockService struct {
	predictResp types.PredictResponse
	predictErr  error
	outcomeResp types.OutcomeResponse
	outcomeErr  error
	recs        []types.PredictionRecord
	listErr     error
	status      types.StatusResponse
	ready       bool
	gotLimit    int
	gotRaw      []byte
}

func (m *mockService) Predict(ctx context.Context, obs types.Observation, raw []byte) (types.PredictResponse, error) {
	m.gotRaw = raw
	if m.predictErr != nil {
		return types.PredictResponse{}, m.predictErr
	}
	resp := m.predictResp
	if resp.ObservationID == "" && obs.ObservationID != nil {
		resp.ObservationID = *obs.ObservationID
	}
	return resp, nil
}

func (m *mockService) RecordOutcome(ctx context.Context, id string, outcome bool) (types.OutcomeResponse, error) {
	if m.outcomeErr != nil {
		return types.OutcomeResponse{}, m.outcomeErr
	}
	return m.outcomeResp, nil
}

func (m *mockService) ListPredictions(ctx context.Context, limit int) ([]types.PredictionRecord, error) {
	m.gotLimit = limit
	return m.recs, m.listErr
}

func (m *mockService) Status(ctx context.Context) types.StatusResponse { return m.status }
func (m *mockService) Ready(ctx context.Context) bool                  { return m.ready }

func validObsBody() map[string]any {
	return map[string]any{
		"observation_id":               "obs-1",
		"Type":                         "Person search",
		"Date":                         "2024-03-01T21:45:00Z",
		"Part of a policing operation": false,
		"Latitude":                     52.5,
		"Longitude":                    -1.2,
		"Gender":                       "Male",
		"Age range":                    "18-24",
		"Officer-defined ethnicity":    "White",
		"Legislation":                  "Misuse of Drugs Act 1971 (section 23)",
		"Object of search":             "Controlled drugs",
		"station":                      "metropolitan",
	}
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestShouldSearchOK(t *testing.T) {
	svc := &mockService{predictResp: types.PredictResponse{Outcome: true, Proba: 0.73}}
	r := NewMux(svc)
	w := postJSON(t, r, "/should_search", validObsBody())
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp types.PredictResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !resp.Outcome || resp.Proba != 0.73 || resp.ObservationID != "obs-1" {
		t.Fatalf("resp=%+v", resp)
	}
	if len(svc.gotRaw) == 0 {
		t.Fatalf("raw body not forwarded to service")
	}
}

func TestShouldSearchEmptyBody(t *testing.T) {
	r := NewMux(&mockService{})
	w := postJSON(t, r, "/should_search", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "observation_id") {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestShouldSearchMissingField(t *testing.T) {
	body := validObsBody()
	delete(body, "Type")
	r := NewMux(&mockService{})
	w := postJSON(t, r, "/should_search", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `\"Type\"`) {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestShouldSearchWrongType(t *testing.T) {
	body := validObsBody()
	body["Latitude"] = "52.5"
	r := NewMux(&mockService{})
	w := postJSON(t, r, "/should_search", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Latitude") {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestShouldSearchBadJSON(t *testing.T) {
	r := NewMux(&mockService{})
	req := httptest.NewRequest(http.MethodPost, "/should_search", bytes.NewBufferString("not-json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestShouldSearchUnsupportedMediaType(t *testing.T) {
	r := NewMux(&mockService{})
	req := httptest.NewRequest(http.MethodPost, "/should_search", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestShouldSearchBodyTooLarge(t *testing.T) {
	r := NewMux(&mockService{})
	big := make([]byte, (1<<20)+10)
	for i := range big {
		big[i] = 'a'
	}
	req := httptest.NewRequest(http.MethodPost, "/should_search", bytes.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for too-large body, got %d", w.Code)
	}
}

func TestShouldSearchDuplicateMaps409(t *testing.T) {
	svc := &mockService{predictErr: store.ErrDuplicate("obs-1")}
	r := NewMux(svc)
	w := postJSON(t, r, "/should_search", validObsBody())
	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestShouldSearchStoreUnavailableMaps503(t *testing.T) {
	svc := &mockService{predictErr: store.ErrUnavailable("insert prediction")}
	r := NewMux(svc)
	w := postJSON(t, r, "/should_search", validObsBody())
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestShouldSearchGenericErrorMaps500(t *testing.T) {
	svc := &mockService{predictErr: io.EOF}
	r := NewMux(svc)
	w := postJSON(t, r, "/should_search", validObsBody())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestShouldSearchHTTPErrorMapping(t *testing.T) {
	svc := &mockService{predictErr: badRequestError{msg: "column \"Date\": unparseable timestamp"}}
	r := NewMux(svc)
	w := postJSON(t, r, "/should_search", validObsBody())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestSearchResultOK(t *testing.T) {
	svc := &mockService{outcomeResp: types.OutcomeResponse{ObservationID: "obs-1", Outcome: false, PredictedOutcome: true}}
	r := NewMux(svc)
	w := postJSON(t, r, "/search_result", map[string]any{"observation_id": "obs-1", "outcome": false})
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp types.OutcomeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !resp.PredictedOutcome || resp.Outcome {
		t.Fatalf("resp=%+v", resp)
	}
}

func TestSearchResultNotFound(t *testing.T) {
	svc := &mockService{outcomeErr: store.ErrNotFound("missing")}
	r := NewMux(svc)
	w := postJSON(t, r, "/search_result", map[string]any{"observation_id": "missing", "outcome": true})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestSearchResultMissingOutcome(t *testing.T) {
	r := NewMux(&mockService{})
	w := postJSON(t, r, "/search_result", map[string]any{"observation_id": "obs-1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "outcome") {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestPredictionsList(t *testing.T) {
	svc := &mockService{recs: []types.PredictionRecord{{ObservationID: "obs-1"}, {ObservationID: "obs-2"}}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/predictions", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var resp types.PredictionsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(resp.Predictions) != 2 {
		t.Fatalf("len=%d", len(resp.Predictions))
	}
	if svc.gotLimit != defaultListLimit {
		t.Fatalf("limit=%d", svc.gotLimit)
	}
}

func TestPredictionsLimitInvalid(t *testing.T) {
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/predictions?limit=zero", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestPredictionsLimitCapped(t *testing.T) {
	svc := &mockService{}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/predictions?limit=99999", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if svc.gotLimit != maxListLimit {
		t.Fatalf("limit=%d", svc.gotLimit)
	}
}

func TestStatusHandler(t *testing.T) {
	svc := &mockService{status: types.StatusResponse{State: "ready", Store: types.StoreStatus{Predictions: 5}}}
	r := NewMux(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.Store.Predictions != 5 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestHealthz(t *testing.T) {
	r := NewMux(&mockService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyz(t *testing.T) {
	r := NewMux(&mockService{ready: true})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyz_NotReady(t *testing.T) {
	r := NewMux(&mockService{ready: false})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unavailable") {
		t.Fatalf("body=%q", w.Body.String())
	}
}
