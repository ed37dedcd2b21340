package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names (several carry spaces) instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// readJSONBody reads the (already size-capped) request body into v and
// returns the raw bytes. Per-field type mismatches become 400s naming the
// offending field.
func readJSONBody(r *http.Request, v any) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		// MaxBytesReader surfaces oversized bodies here.
		return nil, badRequestError{msg: "unable to read request body"}
	}
	if err := json.Unmarshal(body, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, badRequestError{msg: fmt.Sprintf("field %q must be %s, got %s",
				typeErr.Field, kindWord(typeErr.Type), typeErr.Value)}
		}
		return nil, badRequestError{msg: "invalid JSON body"}
	}
	return body, nil
}

// validateStruct runs validator tags and maps the first failure to a 400.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return badRequestError{msg: fmt.Sprintf("missing required field %q", fe.Field())}
		}
		return badRequestError{msg: fmt.Sprintf("invalid value for field %q", fe.Field())}
	}
	return badRequestError{msg: "invalid request"}
}

func kindWord(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	default:
		return t.String()
	}
}

// requireJSON rejects requests without an application/json content type.
func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	return true
}
