package searchctl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Config holds settings shared by all searchctl commands.
type Config struct {
	// Addr is the base URL of a running searchd, e.g. http://localhost:8080.
	Addr string
	// Out receives command output; defaults to os.Stdout.
	Out io.Writer
}

func (c *Config) out() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

func (c *Config) get(path string) ([]byte, error) {
	resp, err := httpClient.Get(c.Addr + path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s: %s: %s", path, resp.Status, bytes.TrimSpace(body))
	}
	return body, nil
}

func (c *Config) postJSON(path string, payload []byte) ([]byte, error) {
	resp, err := httpClient.Post(c.Addr+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s: %s: %s", path, resp.Status, bytes.TrimSpace(body))
	}
	return body, nil
}

func (c *Config) printJSON(body []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		// Not JSON (e.g. /healthz); print as-is.
		fmt.Fprintln(c.out(), string(bytes.TrimSpace(body)))
		return nil
	}
	fmt.Fprintln(c.out(), buf.String())
	return nil
}

func fnHealth(cfg *Config) error {
	body, err := cfg.get("/healthz")
	if err != nil {
		return err
	}
	return cfg.printJSON(body)
}

func fnStatus(cfg *Config) error {
	body, err := cfg.get("/status")
	if err != nil {
		return err
	}
	return cfg.printJSON(body)
}

func fnPredict(cfg *Config, file string) error {
	payload, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read observation: %w", err)
	}
	body, err := cfg.postJSON("/should_search", payload)
	if err != nil {
		return err
	}
	return cfg.printJSON(body)
}

func fnOutcome(cfg *Config, id string, outcome bool) error {
	payload, err := json.Marshal(map[string]any{"observation_id": id, "outcome": outcome})
	if err != nil {
		return err
	}
	body, err := cfg.postJSON("/search_result", payload)
	if err != nil {
		return err
	}
	return cfg.printJSON(body)
}

func fnList(cfg *Config, limit int) error {
	body, err := cfg.get("/predictions?limit=" + strconv.Itoa(limit))
	if err != nil {
		return err
	}
	return cfg.printJSON(body)
}
