package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	apperr "github.com/matzehuels/statcard/pkg/errors"
	"github.com/matzehuels/statcard/pkg/integrations"
)

type errorBody struct {
	Error string      `json:"error"`
	Code  apperr.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status and a JSON {error, code} body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	code := apperr.GetCode(err)

	var local *apperr.RateLimitedError
	var upstream *integrations.RateLimitError
	switch {
	case errors.As(err, &local) && local.RetryAfter > 0:
		w.Header().Set("Retry-After", strconv.Itoa(local.RetryAfter))
	case errors.As(err, &upstream):
		if d := upstream.RetryAfter(time.Now()); d > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(d.Seconds())+1))
		}
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"error", err,
			"request_id", RequestID(r.Context()))
	}
	writeJSON(w, status, errorBody{Error: apperr.UserMessage(err), Code: code})
}
