package model

import (
	"fmt"
	"math"
	"time"
)

// valueError marks an input value the artifact cannot encode, so the HTTP
// layer can answer 400 instead of 500.
type valueError struct {
	column string
	reason string
}

func (e valueError) Error() string {
	return fmt.Sprintf("column %q: %s", e.column, e.reason)
}

func (e valueError) StatusCode() int { return 400 }

// IsValueError reports whether err indicates an unencodable input value.
func IsValueError(err error) bool {
	_, ok := err.(valueError)
	return ok
}

// Predict scores one observation given as a column-name keyed map and returns
// the predicted class together with the positive-class probability. Unknown
// categorical values encode to all zeros rather than failing, matching the
// tolerant behavior of the trained pipeline.
func (a *Artifact) Predict(obs map[string]any) (bool, float64, error) {
	z := a.intercept
	i := 0
	for _, col := range a.columns {
		v, ok := obs[col]
		if !ok {
			return false, 0, valueError{column: col, reason: "no value"}
		}
		enc := a.encoders[col]
		switch enc.Kind {
		case "onehot":
			s, ok := v.(string)
			if !ok {
				return false, 0, valueError{column: col, reason: "expected string"}
			}
			for j, c := range enc.Categories {
				if c == s {
					z += a.coef[i+j]
					break
				}
			}
			i += len(enc.Categories)
		case "standard":
			f, ok := v.(float64)
			if !ok {
				return false, 0, valueError{column: col, reason: "expected number"}
			}
			z += a.coef[i] * ((f - enc.Mean) / enc.Scale)
			i++
		case "hour":
			s, ok := v.(string)
			if !ok {
				return false, 0, valueError{column: col, reason: "expected timestamp string"}
			}
			t, err := parseTimestamp(s)
			if err != nil {
				return false, 0, valueError{column: col, reason: "unparseable timestamp"}
			}
			h := float64(t.Hour())
			if enc.Scale > 0 {
				h = (h - enc.Mean) / enc.Scale
			}
			z += a.coef[i] * h
			i++
		case "passthrough":
			b, ok := v.(bool)
			if !ok {
				return false, 0, valueError{column: col, reason: "expected bool"}
			}
			if b {
				z += a.coef[i]
			}
			i++
		}
	}
	p := 1 / (1 + math.Exp(-z))
	return p >= a.threshold, p, nil
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
