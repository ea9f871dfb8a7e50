package server

import (
	"encoding/json"
	"net/http"

	"github.com/docuveil/docuveil/internal/faults"
)

// errorEnvelope is the uniform failure payload.
type errorEnvelope struct {
	ErrorKind faults.Kind `json:"error_kind"`
	Message   string      `json:"message"`
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log error but can't change response at this point
		return
	}
}

// respondError maps the error's fault kind to an HTTP status and writes
// the envelope.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	kind := faults.KindOf(err)
	s.log.WithError(err).WithFields("kind", kind).Warn("request failed")
	respondJSON(w, faults.HTTPStatus(kind), errorEnvelope{
		ErrorKind: kind,
		Message:   err.Error(),
	})
}

// decodeJSON reads a request body into v, capped at the upload limit.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return faults.Wrap(faults.InvalidInput, err, "malformed request body")
	}
	return nil
}
