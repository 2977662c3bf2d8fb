package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	errx "github.com/danomnoms/server/internal/core/error"
	logx "github.com/danomnoms/server/pkg/logger"
)

const maxBodyBytes = 1 << 20

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// writeJSON encodes before writing the header so an unencodable value becomes a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		logx.Error().Err(err).Msg("failed to encode response")
		status = http.StatusInternalServerError
		b, _ = json.Marshal(ErrorBody{Detail: fmt.Sprintf("failed to encode response: %v", err)})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(b, '\n')); err != nil {
		logx.Debug().Err(err).Msg("failed to write response")
	}
}

// writeError renders err as {"detail": ...} with the status of its errx kind.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	ae := errx.As(err)
	ev := logx.Warn()
	if ae.Status >= http.StatusInternalServerError {
		ev = logx.Error()
	}
	ev.Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("kind", string(ae.Kind)).
		Int("status", ae.Status).
		Msg("request failed")
	writeJSON(w, ae.Status, ErrorBody{Detail: ae.Message})
}

// decodeJSON reads the request body into dst. Any failure is a validation error.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errx.Validation("request body is required")
		}
		return errx.New(errx.KindValidation, err, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}
