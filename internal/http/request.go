package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// requestError marks failures to read the request itself. They are answered
// with 400 before any service is called.
type requestError struct {
	err error
}

func (e requestError) Error() string { return e.err.Error() }

func (e requestError) Unwrap() error { return e.err }

// pathID binds the {id} path parameter.
func pathID(r *http.Request) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return 0, requestError{err: fmt.Errorf("invalid id: %w", err)}
	}
	if id <= 0 {
		return 0, requestError{err: errors.New("invalid id: must be positive")}
	}
	return id, nil
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return requestError{err: fmt.Errorf("invalid request body: %w", err)}
	}
	return nil
}

// decodeStatusCode reads a status body. Clients send the bare integer code;
// a quoted code or status name is accepted as well.
func decodeStatusCode(r *http.Request, parse func(string) (uint8, error)) (uint8, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<10))
	if err != nil {
		return 0, requestError{err: fmt.Errorf("read request body: %w", err)}
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return 0, requestError{err: fmt.Errorf("invalid status body: %w", err)}
	}

	switch v := raw.(type) {
	case float64:
		if v != float64(uint8(v)) {
			return 0, requestError{err: fmt.Errorf("invalid status code %v", v)}
		}
		return uint8(v), nil
	case string:
		code, err := parse(strings.TrimSpace(v))
		if err != nil {
			return 0, requestError{err: err}
		}
		return code, nil
	default:
		return 0, requestError{err: errors.New("status must be an integer code")}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}
