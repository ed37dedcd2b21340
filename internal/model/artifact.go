package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DType names the expected JSON type of an input column.
type DType string

const (
	DTypeString   DType = "str"
	DTypeBool     DType = "bool"
	DTypeFloat    DType = "float"
	DTypeDatetime DType = "datetime"
)

// Encoder describes how one input column is turned into features.
type Encoder struct {
	// Kind is one of: onehot, standard, hour, passthrough.
	Kind string `json:"kind"`
	// Categories for onehot encoders, in weight order.
	Categories []string `json:"categories,omitempty"`
	// Mean/Scale for standard (and optionally hour) encoders.
	Mean  float64 `json:"mean,omitempty"`
	Scale float64 `json:"scale,omitempty"`
}

// width is the number of features this encoder contributes.
func (e Encoder) width() int {
	if e.Kind == "onehot" {
		return len(e.Categories)
	}
	return 1
}

type pipelineFile struct {
	Encoders     map[string]Encoder `json:"encoders"`
	Coefficients []float64          `json:"coefficients"`
	Intercept    float64            `json:"intercept"`
	Threshold    float64            `json:"threshold"`
	Classes      []string           `json:"classes"`
}

// Artifact is the pre-trained classifier loaded once at startup. It is
// immutable after Load and safe for concurrent use.
type Artifact struct {
	path      string
	columns   []string
	dtypes    map[string]DType
	encoders  map[string]Encoder
	coef      []float64
	intercept float64
	threshold float64
	classes   []string
	width     int
}

// Load reads an artifact directory containing columns.json, dtypes.json and
// pipeline.json and cross-validates the three against each other.
func Load(dir string) (*Artifact, error) {
	base, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}

	var columns []string
	if err := readJSON(filepath.Join(abs, "columns.json"), &columns); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("columns.json: no columns defined")
	}
	var dtypes map[string]DType
	if err := readJSON(filepath.Join(abs, "dtypes.json"), &dtypes); err != nil {
		return nil, err
	}
	var pf pipelineFile
	if err := readJSON(filepath.Join(abs, "pipeline.json"), &pf); err != nil {
		return nil, err
	}

	width := 0
	for _, col := range columns {
		dt, ok := dtypes[col]
		if !ok {
			return nil, fmt.Errorf("dtypes.json: no dtype for column %q", col)
		}
		enc, ok := pf.Encoders[col]
		if !ok {
			return nil, fmt.Errorf("pipeline.json: no encoder for column %q", col)
		}
		if err := checkEncoder(col, dt, enc); err != nil {
			return nil, err
		}
		width += enc.width()
	}
	if len(pf.Coefficients) != width {
		return nil, fmt.Errorf("pipeline.json: %d coefficients for feature width %d", len(pf.Coefficients), width)
	}
	if pf.Threshold == 0 {
		pf.Threshold = 0.5
	}
	if pf.Threshold < 0 || pf.Threshold > 1 {
		return nil, fmt.Errorf("pipeline.json: threshold %v out of range", pf.Threshold)
	}
	if len(pf.Classes) == 0 {
		pf.Classes = []string{"false", "true"}
	}
	if len(pf.Classes) != 2 {
		return nil, fmt.Errorf("pipeline.json: want 2 classes, got %d", len(pf.Classes))
	}

	return &Artifact{
		path:      abs,
		columns:   columns,
		dtypes:    dtypes,
		encoders:  pf.Encoders,
		coef:      pf.Coefficients,
		intercept: pf.Intercept,
		threshold: pf.Threshold,
		classes:   pf.Classes,
		width:     width,
	}, nil
}

func checkEncoder(col string, dt DType, enc Encoder) error {
	switch enc.Kind {
	case "onehot":
		if dt != DTypeString {
			return fmt.Errorf("column %q: onehot encoder requires str dtype, got %s", col, dt)
		}
		if len(enc.Categories) == 0 {
			return fmt.Errorf("column %q: onehot encoder has no categories", col)
		}
	case "standard":
		if dt != DTypeFloat {
			return fmt.Errorf("column %q: standard encoder requires float dtype, got %s", col, dt)
		}
		if enc.Scale <= 0 {
			return fmt.Errorf("column %q: standard encoder scale must be > 0", col)
		}
	case "hour":
		if dt != DTypeDatetime {
			return fmt.Errorf("column %q: hour encoder requires datetime dtype, got %s", col, dt)
		}
	case "passthrough":
		if dt != DTypeBool {
			return fmt.Errorf("column %q: passthrough encoder requires bool dtype, got %s", col, dt)
		}
	default:
		return fmt.Errorf("column %q: unknown encoder kind %q", col, enc.Kind)
	}
	return nil
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}

// Path returns the absolute directory the artifact was loaded from.
func (a *Artifact) Path() string { return a.path }

// Columns returns the ordered input column names.
func (a *Artifact) Columns() []string {
	out := make([]string, len(a.columns))
	copy(out, a.columns)
	return out
}

// Classes returns the class labels, negative class first.
func (a *Artifact) Classes() []string {
	out := make([]string, len(a.classes))
	copy(out, a.classes)
	return out
}

// Threshold returns the positive-class decision threshold.
func (a *Artifact) Threshold() float64 { return a.threshold }

// FeatureWidth returns the width of the encoded feature vector.
func (a *Artifact) FeatureWidth() int { return a.width }

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
