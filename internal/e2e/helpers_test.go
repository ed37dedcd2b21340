package e2e

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"searchd/internal/httpapi"
	"searchd/internal/model"
	"searchd/internal/predictor"
	"searchd/internal/store"
)

// newTestDaemon wires the real artifact, a fresh SQLite store and the real
// mux behind an httptest server, the full stack minus process startup.
func newTestDaemon(t *testing.T) *httptest.Server {
	srv, _ := newTestDaemonWithStore(t)
	return srv
}

func newTestDaemonWithStore(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()
	art, err := model.Load(filepath.Join("..", "model", "testdata", "artifact"))
	if err != nil {
		t.Fatalf("load artifact: %v", err)
	}
	st, err := store.Open(filepath.Join(t.TempDir(), "predictions.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	srv := httptest.NewServer(httpapi.NewMux(predictor.New(art, st)))
	t.Cleanup(srv.Close)
	return srv, st
}

func observationJSON(id, objectOfSearch string) string {
	return fmt.Sprintf(`{
		"observation_id": %q,
		"Type": "Person search",
		"Date": "2024-03-01T21:45:00Z",
		"Part of a policing operation": false,
		"Latitude":52.5,
		"Longitude": -1.2,
		"Gender": "Male",
		"Age range": "18-24",
		"Officer-defined ethnicity": "White",
		"Legislation": "Misuse of Drugs Act 1971 (section 23)",
		"Object of search": %q,
		"station": "metropolitan"
	}`, id, objectOfSearch)
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func postJSON(t *testing.T, url, body string) (int, string) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(b)
}
