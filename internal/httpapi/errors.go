package httpapi

import (
	"encoding/json"
	"net/http"

	"searchd/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// badRequestError wraps a validation message for 400 mapping.
type badRequestError struct{ msg string }

func (e badRequestError) Error() string   { return e.msg }
func (e badRequestError) StatusCode() int { return http.StatusBadRequest }

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
